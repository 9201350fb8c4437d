package services

import (
	"strings"

	"github.com/rohits-web03/lyricjournal/internal/models"
)

// Filter returns the entries matching query and activeTags, in their original
// order. query is matched case-insensitively against title, artist, lyric text
// and note; a blank query matches everything. A non-empty activeTags keeps only
// entries carrying at least one of those tags. Both conditions must hold.
func Filter(entries []models.LyricEntry, query string, activeTags []string) []models.LyricEntry {
	q := strings.ToLower(strings.TrimSpace(query))

	var tagSet map[string]struct{}
	for _, tag := range activeTags {
		if tag == "" {
			continue
		}
		if tagSet == nil {
			tagSet = make(map[string]struct{}, len(activeTags))
		}
		tagSet[tag] = struct{}{}
	}

	out := make([]models.LyricEntry, 0, len(entries))
	for _, e := range entries {
		if matchesQuery(e, q) && matchesTags(e, tagSet) {
			out = append(out, e)
		}
	}
	return out
}

func matchesQuery(e models.LyricEntry, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range [...]string{e.Title, e.Artist, e.LyricText, e.Note} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesTags(e models.LyricEntry, tagSet map[string]struct{}) bool {
	if len(tagSet) == 0 {
		return true
	}
	for _, tag := range e.Tags {
		if _, ok := tagSet[tag]; ok {
			return true
		}
	}
	return false
}
