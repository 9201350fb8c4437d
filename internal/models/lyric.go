package models

// LyricEntry is one saved lyric in a user's partition.
type LyricEntry struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	LyricText string   `json:"lyricText"`
	Note      string   `json:"note"`
	Tags      []string `json:"tags"`
	DateAdded string   `json:"dateAdded"` // YYYY-MM-DD, set once at creation
}

// LyricInput carries the mutable fields of a LyricEntry for create and update.
type LyricInput struct {
	Title     string
	Artist    string
	LyricText string
	Note      string
	Tags      []string
}

// TagCount is one row of a user's tag usage summary.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
