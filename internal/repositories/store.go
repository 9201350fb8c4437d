package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

// DocumentStore loads and saves the whole backing document. Save is always a
// full overwrite.
type DocumentStore interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// Store serialises access to a DocumentStore. Every Update runs its
// load-mutate-save cycle under an exclusive lock, so two requests in this
// process can no longer overwrite each other's changes.
type Store struct {
	mu      sync.RWMutex
	backend DocumentStore
}

// NewStore wraps backend with a per-document lock.
func NewStore(backend DocumentStore) *Store {
	return &Store{backend: backend}
}

// View loads the current document and passes it to fn. fn must not retain or
// modify the document.
func (s *Store) View(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads the document, lets fn mutate it and saves the result. If fn
// returns an error nothing is written.
func (s *Store) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.backend.Save(ctx, doc)
}

// Snapshot returns the current document encoded the same way the file backend
// writes it.
func (s *Store) Snapshot(ctx context.Context) ([]byte, error) {
	var out []byte
	err := s.View(ctx, func(doc *models.Document) error {
		b, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	return out, err
}

func encodeDocument(doc *models.Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errs.Storage("encode database", err)
	}
	return b, nil
}

func decodeDocument(data []byte) (*models.Document, error) {
	doc := models.NewDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errs.Storage("parse database", err)
	}
	doc.Normalize()
	return doc, nil
}
