package document

import (
	"strings"
	"time"
)

// Author identifies who made a touch. Either field may be empty when the
// commit signature did not carry it.
type Author struct {
	Name  string
	Email string
}

// ContributorKey returns a normalized identifier for grouping contributors.
func (a Author) ContributorKey() string {
	return strings.ToLower(a.Email)
}

// Touch is a single commit's modification of a document.
type Touch struct {
	Commit string
	When   time.Time
	Author Author
}

// Record holds the reconstructed history of one document.
//
// A record starts untouched. The first call to Touch initializes the first
// and last touch together; later calls only overwrite the last touch.
type Record struct {
	Path string

	first        *time.Time
	last         *Touch
	revisions    int
	contributors map[string]struct{}
}

// NewRecord creates an untouched record for path.
func NewRecord(path string) *Record {
	return &Record{
		Path:         path,
		contributors: make(map[string]struct{}),
	}
}

// Touch applies a commit touch to the record.
func (r *Record) Touch(t Touch) {
	if r.first == nil {
		when := t.When
		r.first = &when
	}
	r.last = &t
	r.revisions++
	if r.contributors == nil {
		r.contributors = make(map[string]struct{})
	}
	if key := t.Author.ContributorKey(); key != "" {
		r.contributors[key] = struct{}{}
	}
}

// Touched reports whether any commit has touched the record.
func (r *Record) Touched() bool {
	return r.last != nil
}

// FirstTouched returns the time of the first touch.
func (r *Record) FirstTouched() (time.Time, bool) {
	if r.first == nil {
		return time.Time{}, false
	}
	return *r.first, true
}

// LastTouch returns the most recent touch.
func (r *Record) LastTouch() (Touch, bool) {
	if r.last == nil {
		return Touch{}, false
	}
	return *r.last, true
}

// Revisions returns the number of touches applied.
func (r *Record) Revisions() int {
	return r.revisions
}

// ContributorCount returns number of unique contributors.
func (r *Record) ContributorCount() int {
	return len(r.contributors)
}
