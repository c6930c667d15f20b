package core

import (
	"strings"
	"time"
)

// TimestampLayout is the format of Note.CreatedAt ("YYYY-MM-DD HH:MM", local time).
const TimestampLayout = "2006-01-02 15:04"

// Note is the central entity of the domain.
// Its ID is positional: it always equals the note's index in the collection
// and is reassigned when an earlier note is deleted.
type Note struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// FormatTimestamp renders t the way CreatedAt is stored.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// matches reports whether the note contains the already lower-cased needle
// in its title or its content.
func (n Note) matches(needle string) bool {
	return strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Content), needle)
}
