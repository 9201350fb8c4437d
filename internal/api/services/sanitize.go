package services

import "strings"

const (
	// MaxTextLen is the cap, in characters, applied to every stored free-text value.
	MaxTextLen = 5000
	// MaxTags is the number of tags kept on an entry; the rest are dropped.
	MaxTags = 20
)

// SanitizeText trims s and truncates it to MaxTextLen characters.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	n := 0
	for i := range s {
		if n == MaxTextLen {
			return s[:i]
		}
		n++
	}
	return s
}

// SanitizeTags drops blank tags, sanitizes the rest and keeps the first MaxTags.
// The result is never nil.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, min(len(tags), MaxTags))
	for _, tag := range tags {
		if len(out) == MaxTags {
			break
		}
		if strings.TrimSpace(tag) == "" {
			continue
		}
		out = append(out, SanitizeText(tag))
	}
	return out
}
