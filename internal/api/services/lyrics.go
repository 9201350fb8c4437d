package services

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

const (
	msgLyricFieldsRequired = "Title, artist, and lyric text required"
	msgLyricNotFound       = "Lyric not found"
)

// ErrLyricFieldsRequired is the error for an entry missing title, artist or lyric text.
func ErrLyricFieldsRequired() error { return errs.Validation(msgLyricFieldsRequired) }

// ErrLyricNotFound is the error for an id that is not in the user's partition.
func ErrLyricNotFound() error { return errs.NotFound(msgLyricNotFound) }

// LyricService manages the lyric partition of an authenticated user.
type LyricService struct {
	store DocumentStore
	now   func() time.Time
}

// LyricOption customises a LyricService.
type LyricOption func(*LyricService)

// WithLyricClock overrides the time source used for ids and dateAdded.
func WithLyricClock(now func() time.Time) LyricOption {
	return func(s *LyricService) { s.now = now }
}

// NewLyricService builds a LyricService on top of store.
func NewLyricService(store DocumentStore, opts ...LyricOption) *LyricService {
	s := &LyricService{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the user's entries, newest first.
func (s *LyricService) List(ctx context.Context, username string) ([]models.LyricEntry, error) {
	key := userKey(username)
	var out []models.LyricEntry
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = slices.Clone(doc.Lyrics[key])
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.LyricEntry{}
	}
	return out, nil
}

// Search lists the user's entries narrowed by Filter.
func (s *LyricService) Search(ctx context.Context, username, query string, tags []string) ([]models.LyricEntry, error) {
	entries, err := s.List(ctx, username)
	if err != nil {
		return nil, err
	}
	return Filter(entries, query, tags), nil
}

// Create sanitizes in, stores it as a new entry at the front of the user's
// partition and returns it.
func (s *LyricService) Create(ctx context.Context, username string, in models.LyricInput) (models.LyricEntry, error) {
	in, err := sanitizeInput(in)
	if err != nil {
		return models.LyricEntry{}, err
	}

	key := userKey(username)
	var entry models.LyricEntry
	err = s.store.Update(ctx, func(doc *models.Document) error {
		now := s.now()
		entry = models.LyricEntry{
			ID:        nextLyricID(doc, now),
			Title:     in.Title,
			Artist:    in.Artist,
			LyricText: in.LyricText,
			Note:      in.Note,
			Tags:      in.Tags,
			DateAdded: now.UTC().Format(time.DateOnly),
		}
		doc.Lyrics[key] = slices.Insert(doc.Lyrics[key], 0, entry)
		return nil
	})
	if err != nil {
		return models.LyricEntry{}, err
	}
	return entry, nil
}

// Update replaces the mutable fields of entry id. id and dateAdded are kept.
func (s *LyricService) Update(ctx context.Context, username string, id int64, in models.LyricInput) (models.LyricEntry, error) {
	in, err := sanitizeInput(in)
	if err != nil {
		return models.LyricEntry{}, err
	}

	key := userKey(username)
	var entry models.LyricEntry
	err = s.store.Update(ctx, func(doc *models.Document) error {
		entries := doc.Lyrics[key]
		i := indexOf(entries, id)
		if i < 0 {
			return ErrLyricNotFound()
		}
		e := &entries[i]
		e.Title = in.Title
		e.Artist = in.Artist
		e.LyricText = in.LyricText
		e.Note = in.Note
		e.Tags = in.Tags
		entry = *e
		return nil
	})
	if err != nil {
		return models.LyricEntry{}, err
	}
	return entry, nil
}

// Delete removes entry id from the user's partition.
func (s *LyricService) Delete(ctx context.Context, username string, id int64) error {
	key := userKey(username)
	return s.store.Update(ctx, func(doc *models.Document) error {
		entries := doc.Lyrics[key]
		i := indexOf(entries, id)
		if i < 0 {
			return ErrLyricNotFound()
		}
		doc.Lyrics[key] = slices.Delete(entries, i, i+1)
		return nil
	})
}

// TagSummary counts tag usage across the user's entries, most used first.
// Tags with equal counts keep the order in which they were first seen.
func (s *LyricService) TagSummary(ctx context.Context, username string) ([]models.TagCount, error) {
	entries, err := s.List(ctx, username)
	if err != nil {
		return nil, err
	}

	counts := []models.TagCount{}
	index := map[string]int{}
	for _, e := range entries {
		for _, tag := range e.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(counts)
				index[tag] = i
				counts = append(counts, models.TagCount{Tag: tag})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(a, b int) bool { return counts[a].Count > counts[b].Count })
	return counts, nil
}

func sanitizeInput(in models.LyricInput) (models.LyricInput, error) {
	out := models.LyricInput{
		Title:     SanitizeText(in.Title),
		Artist:    SanitizeText(in.Artist),
		LyricText: SanitizeText(in.LyricText),
		Note:      SanitizeText(in.Note),
		Tags:      SanitizeTags(in.Tags),
	}
	if out.Title == "" || out.Artist == "" || out.LyricText == "" {
		return models.LyricInput{}, ErrLyricFieldsRequired()
	}
	return out, nil
}

// nextLyricID derives an id from the creation time, bumped past every id in
// the document so ids stay unique across all users.
func nextLyricID(doc *models.Document, now time.Time) int64 {
	return max(now.UnixMilli(), doc.MaxLyricID()+1)
}

func indexOf(entries []models.LyricEntry, id int64) int {
	return slices.IndexFunc(entries, func(e models.LyricEntry) bool { return e.ID == id })
}
