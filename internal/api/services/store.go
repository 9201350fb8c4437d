// Package services holds the account and lyric business logic. Services work on
// the backing document through the locked view/update primitives of the store
// and return classified errors from package errs.
package services

import (
	"context"
	"strings"

	"github.com/rohits-web03/lyricjournal/internal/models"
)

// DocumentStore is the part of repositories.Store the services depend on.
type DocumentStore interface {
	View(ctx context.Context, fn func(doc *models.Document) error) error
	Update(ctx context.Context, fn func(doc *models.Document) error) error
}

// userKey is the document key for a username. Keys are always lowercase so
// lookups are case-insensitive.
func userKey(username string) string {
	return strings.ToLower(username)
}
