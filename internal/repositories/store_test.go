package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/lyricjournal/internal/models"
)

// memStore is an in-memory DocumentStore that round-trips through JSON so
// callers cannot share pointers with the stored copy.
type memStore struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

var _ DocumentStore = (*memStore)(nil)

func (m *memStore) Load(context.Context) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return decodeDocument(m.data)
}

func (m *memStore) Save(_ context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.data = b
	m.saves++
	return nil
}

func TestStore_UpdateSavesMutation(t *testing.T) {
	t.Parallel()

	backend := &memStore{}
	s := NewStore(backend)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(doc *models.Document) error {
		doc.Users["bob"] = models.User{Username: "bob"}
		return nil
	}))

	require.NoError(t, s.View(ctx, func(doc *models.Document) error {
		require.Contains(t, doc.Users, "bob")
		return nil
	}))
	require.Equal(t, 1, backend.saves)
}

func TestStore_UpdateErrorSkipsSave(t *testing.T) {
	t.Parallel()

	backend := &memStore{}
	s := NewStore(backend)
	want := errors.New("nope")

	err := s.Update(context.Background(), func(doc *models.Document) error {
		doc.Users["bob"] = models.User{Username: "bob"}
		return want
	})
	require.ErrorIs(t, err, want)
	require.Zero(t, backend.saves)
}

func TestStore_PropagatesBackendErrors(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("load")
	s := NewStore(&memStore{loadErr: loadErr})
	require.ErrorIs(t, s.View(context.Background(), func(*models.Document) error { return nil }), loadErr)
	require.ErrorIs(t, s.Update(context.Background(), func(*models.Document) error { return nil }), loadErr)

	saveErr := errors.New("save")
	s = NewStore(&memStore{saveErr: saveErr})
	require.ErrorIs(t, s.Update(context.Background(), func(*models.Document) error { return nil }), saveErr)
}

func TestStore_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	t.Parallel()

	s := NewStore(&memStore{})
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errCh <- s.Update(ctx, func(doc *models.Document) error {
				doc.Lyrics["bob"] = append(doc.Lyrics["bob"], models.LyricEntry{ID: int64(i), Title: fmt.Sprint(i)})
				return nil
			})
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	require.NoError(t, s.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Lyrics["bob"], n)
		return nil
	}))
}

func TestStore_Snapshot(t *testing.T) {
	t.Parallel()

	s := NewStore(&memStore{})
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, func(doc *models.Document) error {
		doc.Lyrics["bob"] = []models.LyricEntry{{ID: 7, Title: "x", Tags: []string{}}}
		return nil
	}))

	raw, err := s.Snapshot(ctx)
	require.NoError(t, err)

	var doc models.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, int64(7), doc.Lyrics["bob"][0].ID)
}
