package models

// Document is the whole backing document: every user and every lyric partition,
// both keyed by lowercase username.
type Document struct {
	Users  map[string]User         `json:"users"`
	Lyrics map[string][]LyricEntry `json:"lyrics"`
}

// NewDocument returns an empty document with initialised maps.
func NewDocument() *Document {
	return &Document{
		Users:  map[string]User{},
		Lyrics: map[string][]LyricEntry{},
	}
}

// Normalize replaces nil maps left by decoding "null" or a missing key.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = map[string]User{}
	}
	if d.Lyrics == nil {
		d.Lyrics = map[string][]LyricEntry{}
	}
}

// MaxLyricID returns the largest entry id across all partitions, or 0.
func (d *Document) MaxLyricID() int64 {
	var maxID int64
	for _, entries := range d.Lyrics {
		for _, e := range entries {
			if e.ID > maxID {
				maxID = e.ID
			}
		}
	}
	return maxID
}
