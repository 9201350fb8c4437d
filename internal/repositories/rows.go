package repositories

import (
	"encoding/json"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

func newLyricRow(owner string, position int, e models.LyricEntry) (lyricRow, error) {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return lyricRow{}, errs.Storage("encode tags", err)
	}
	return lyricRow{
		Owner:     owner,
		Position:  position,
		LyricID:   e.ID,
		Title:     e.Title,
		Artist:    e.Artist,
		LyricText: e.LyricText,
		Note:      e.Note,
		Tags:      string(raw),
		DateAdded: e.DateAdded,
	}, nil
}

func (r lyricRow) entry() (models.LyricEntry, error) {
	tags := []string{}
	if len(r.Tags) > 0 {
		if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
			return models.LyricEntry{}, errs.Storage("decode tags", err)
		}
	}
	return models.LyricEntry{
		ID:        r.LyricID,
		Title:     r.Title,
		Artist:    r.Artist,
		LyricText: r.LyricText,
		Note:      r.Note,
		Tags:      tags,
		DateAdded: r.DateAdded,
	}, nil
}
