package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohits-web03/lyricjournal/internal/repositories"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	fs, err := repositories.NewFileStore(filepath.Join(t.TempDir(), "database.json"))
	require.NoError(t, err)
	return repositories.NewStore(fs)
}

func newTestAuth(t *testing.T, store DocumentStore, ttl time.Duration) *AuthService {
	t.Helper()
	return NewAuthService(store, []byte("test-secret"), ttl, WithBcryptCost(bcrypt.MinCost))
}
