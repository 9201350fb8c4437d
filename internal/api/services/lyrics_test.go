package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

func newTestLyrics(t *testing.T, now *time.Time) (*LyricService, DocumentStore) {
	t.Helper()
	store := newTestStore(t)
	return NewLyricService(store, WithLyricClock(func() time.Time { return *now })), store
}

func yesterday() models.LyricInput {
	return models.LyricInput{
		Title:     "Yesterday",
		Artist:    "Beatles",
		LyricText: "All my troubles seemed so far away",
		Tags:      []string{"Sad", "Nostalgic"},
	}
}

func TestLyrics_CreateAssignsIDAndDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	e, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)
	require.Equal(t, fixedNow.UnixMilli(), e.ID)
	require.Equal(t, "2025-03-14", e.DateAdded)
	require.Equal(t, "Yesterday", e.Title)
	require.Equal(t, "", e.Note)
	require.Equal(t, []string{"Sad", "Nostalgic"}, e.Tags)
}

func TestLyrics_CreateRequiresFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	for name, mutate := range map[string]func(*models.LyricInput){
		"title":  func(in *models.LyricInput) { in.Title = "  " },
		"artist": func(in *models.LyricInput) { in.Artist = "" },
		"text":   func(in *models.LyricInput) { in.LyricText = "\n\t" },
	} {
		in := yesterday()
		mutate(&in)
		_, err := s.Create(ctx, "bob", in)
		require.ErrorIs(t, err, errs.ErrValidation, name)
	}

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestLyrics_CreateSanitizes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	tags := make([]string, 25)
	for i := range tags {
		tags[i] = fmt.Sprintf(" t%d ", i)
	}
	long := strings.Repeat("x", 6000)
	e, err := s.Create(ctx, "bob", models.LyricInput{
		Title: long, Artist: long, LyricText: long, Note: long, Tags: tags,
	})
	require.NoError(t, err)
	for _, v := range []string{e.Title, e.Artist, e.LyricText, e.Note} {
		require.Len(t, v, MaxTextLen)
	}
	require.Len(t, e.Tags, MaxTags)
	require.Equal(t, "t0", e.Tags[0])

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, e, list[0])
}

func TestLyrics_NewestFirstAndUniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	first, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)
	// Same millisecond, and a different user: ids must still differ.
	second, err := s.Create(ctx, "carol", yesterday())
	require.NoError(t, err)
	third, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)

	require.Less(t, first.ID, second.ID)
	require.Less(t, second.ID, third.ID)

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []int64{third.ID, first.ID}, ids(list))
}

func TestLyrics_UpdateKeepsIDAndDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	e, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)

	now = fixedNow.Add(72 * time.Hour)
	updated, err := s.Update(ctx, "bob", e.ID, models.LyricInput{
		Title: "Let It Be", Artist: "The Beatles", LyricText: "whisper words", Note: " wisdom ", Tags: []string{"Calm"},
	})
	require.NoError(t, err)
	require.Equal(t, models.LyricEntry{
		ID: e.ID, Title: "Let It Be", Artist: "The Beatles", LyricText: "whisper words",
		Note: "wisdom", Tags: []string{"Calm"}, DateAdded: e.DateAdded,
	}, updated)

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []models.LyricEntry{updated}, list)
}

func TestLyrics_UpdateUnknownChangesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	e, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)

	_, err = s.Update(ctx, "bob", e.ID+1, yesterday())
	require.ErrorIs(t, err, errs.ErrNotFound)

	// Another user's id is unknown too.
	_, err = s.Update(ctx, "carol", e.ID, models.LyricInput{Title: "x", Artist: "y", LyricText: "z"})
	require.ErrorIs(t, err, errs.ErrNotFound)

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []models.LyricEntry{e}, list)

	_, err = s.Update(ctx, "bob", e.ID, models.LyricInput{})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestLyrics_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	a, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)
	b, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(ctx, "carol", a.ID), errs.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "bob", a.ID))
	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []int64{b.ID}, ids(list))

	require.ErrorIs(t, s.Delete(ctx, "bob", a.ID), errs.ErrNotFound)
}

func TestLyrics_PartitionsAreIsolated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	_, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)

	list, err := s.List(ctx, "carol")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	// Usernames are matched case-insensitively.
	list, err = s.List(ctx, "BOB")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestLyrics_TagSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	empty, err := s.TagSummary(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for _, tags := range [][]string{
		{"Calm", "Sad"},
		{"Sad", "Upbeat"},
		{"Sad", "Calm", "Road"},
	} {
		in := yesterday()
		in.Tags = tags
		_, err := s.Create(ctx, "bob", in)
		require.NoError(t, err)
	}

	// Partition order is newest first: [Sad Calm Road], [Sad Upbeat], [Calm Sad].
	got, err := s.TagSummary(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []models.TagCount{
		{Tag: "Sad", Count: 3},
		{Tag: "Calm", Count: 2},
		{Tag: "Road", Count: 1},
		{Tag: "Upbeat", Count: 1},
	}, got)
}

func TestLyrics_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	s, _ := newTestLyrics(t, &now)

	_, err := s.Create(ctx, "bob", yesterday())
	require.NoError(t, err)
	hurt, err := s.Create(ctx, "bob", models.LyricInput{Title: "Hurt", Artist: "Johnny Cash", LyricText: "today", Tags: []string{"Sad"}})
	require.NoError(t, err)

	got, err := s.Search(ctx, "bob", "cash", []string{"Sad"})
	require.NoError(t, err)
	require.Equal(t, []int64{hurt.ID}, ids(got))
}

func TestLyrics_EndToEndScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := fixedNow
	store := newTestStore(t)
	auth := newTestAuth(t, store, 0)
	lyrics := NewLyricService(store, WithLyricClock(func() time.Time { return now }))

	reg, err := auth.Register(ctx, "bob", "secret1")
	require.NoError(t, err)
	user, err := auth.VerifyToken(reg.Token)
	require.NoError(t, err)

	created, err := lyrics.Create(ctx, user, models.LyricInput{
		Title: "Yesterday", Artist: "Beatles", LyricText: "...", Tags: []string{"Sad", "Nostalgic"},
	})
	require.NoError(t, err)

	list, err := lyrics.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, created, list[0])
	require.Equal(t, fixedNow.Format(time.DateOnly), list[0].DateAdded)

	in := models.LyricInput{Title: "Yesterday", Artist: "Beatles", LyricText: "...", Note: "Dad's favourite", Tags: []string{"Sad", "Nostalgic"}}
	_, err = lyrics.Update(ctx, user, created.ID, in)
	require.NoError(t, err)

	list, err = lyrics.List(ctx, user)
	require.NoError(t, err)
	require.Equal(t, "Dad's favourite", list[0].Note)
	require.Equal(t, created.ID, list[0].ID)
	require.Equal(t, created.DateAdded, list[0].DateAdded)

	require.NoError(t, lyrics.Delete(ctx, user, created.ID))
	list, err = lyrics.List(ctx, user)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestLyrics_StoreErrorsPropagate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("boom")
	s := NewLyricService(failingStore{err: boom})

	_, err := s.List(ctx, "bob")
	require.ErrorIs(t, err, boom)
	_, err = s.Create(ctx, "bob", yesterday())
	require.ErrorIs(t, err, boom)
	_, err = s.Update(ctx, "bob", 1, yesterday())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Delete(ctx, "bob", 1), boom)
	_, err = s.TagSummary(ctx, "bob")
	require.ErrorIs(t, err, boom)
}

func TestClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		kind error
		msg  string
	}{
		{ErrCredentialsRequired(), errs.ErrValidation, "Username and password required"},
		{ErrLyricFieldsRequired(), errs.ErrValidation, "Title, artist, and lyric text required"},
		{ErrLyricNotFound(), errs.ErrNotFound, "Lyric not found"},
	}
	for _, tt := range tests {
		require.ErrorIs(t, tt.err, tt.kind)
		e, ok := errs.As(tt.err)
		require.True(t, ok)
		require.Equal(t, tt.msg, e.Message)
	}
}
