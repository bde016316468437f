package feed

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

var (
	// ErrUntouched is returned for a selected document with no commit history.
	ErrUntouched = errors.New("document has no commit history")
	// ErrMissingAuthor is returned when the last touch lacks a name or email.
	ErrMissingAuthor = errors.New("document author is incomplete")
	// ErrMalformedName is returned when a file name does not encode a title.
	ErrMalformedName = errors.New("document file name does not encode a title")
)

// Author is an entry author.
type Author struct {
	Name  string
	Email string
}

// Entry is one rendered document prepared for the feed.
type Entry struct {
	ID        string
	Title     string
	Link      string
	Published string // RFC 3339, first touch
	Updated   string // RFC 3339, last touch
	Author    Author
	Content   string // HTML
	Path      string
}

// Feed is the data handed to the feed template.
type Feed struct {
	ID      string
	Title   string
	Link    string
	Updated string
	Version string
	Entries []Entry
}

// TitleFromPath derives a document title from its file name: the second
// '.'-delimited component of the name without extension, so
// "content/01.hello.md" yields "hello".
func TitleFromPath(p string) (string, error) {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))

	parts := strings.Split(stem, ".")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%s: %w", p, ErrMalformedName)
	}
	return parts[1], nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
