package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/lyricjournal/internal/models"
)

func filterFixture() []models.LyricEntry {
	return []models.LyricEntry{
		{ID: 3, Title: "Yesterday", Artist: "Beatles", LyricText: "all my troubles", Tags: []string{"Sad", "Nostalgic"}},
		{ID: 2, Title: "Help!", Artist: "Beatles", LyricText: "won't you please", Note: "Rooftop memory", Tags: []string{"Upbeat"}},
		{ID: 1, Title: "Hurt", Artist: "Johnny Cash", LyricText: "I hurt myself today", Tags: []string{"Sad"}},
	}
}

func ids(entries []models.LyricEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilter_Query(t *testing.T) {
	t.Parallel()
	entries := filterFixture()

	require.Equal(t, []int64{3, 2, 1}, ids(Filter(entries, "", nil)))
	require.Equal(t, []int64{3, 2, 1}, ids(Filter(entries, "   ", nil)))
	require.Equal(t, []int64{3, 2}, ids(Filter(entries, "beatles", nil)))
	require.Equal(t, []int64{3}, ids(Filter(entries, "  TROUBLES ", nil)))
	require.Equal(t, []int64{2}, ids(Filter(entries, "rooftop", nil)))
	require.Empty(t, Filter(entries, "nothing matches", nil))
}

func TestFilter_Tags(t *testing.T) {
	t.Parallel()
	entries := filterFixture()

	require.Equal(t, []int64{3, 1}, ids(Filter(entries, "", []string{"Sad"})))
	require.Equal(t, []int64{3, 2, 1}, ids(Filter(entries, "", []string{"Sad", "Upbeat"})))
	require.Equal(t, []int64{3, 2, 1}, ids(Filter(entries, "", []string{""})))
	require.Empty(t, Filter(entries, "", []string{"sad"}))
}

func TestFilter_ComposesWithAnd(t *testing.T) {
	t.Parallel()
	entries := filterFixture()

	both := Filter(entries, "beatles", []string{"Sad"})
	require.Equal(t, []int64{3}, ids(both))

	queryFirst := Filter(Filter(entries, "beatles", nil), "", []string{"Sad"})
	tagsFirst := Filter(Filter(entries, "", []string{"Sad"}), "beatles", nil)
	require.Equal(t, ids(both), ids(queryFirst))
	require.Equal(t, ids(both), ids(tagsFirst))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	t.Parallel()
	entries := filterFixture()
	_ = Filter(entries, "hurt", []string{"Sad"})
	require.Equal(t, filterFixture(), entries)
}
