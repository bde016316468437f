package document

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoHistory is returned when documents exist but none was touched by a
// qualifying commit.
var ErrNoHistory = errors.New("no document has commit history")

// ErrInvalidFeedSize is returned when a feed is asked for fewer than one entry.
var ErrInvalidFeedSize = errors.New("feed size must be at least 1")

// SelectTopN returns up to n touched records ordered by last touch, most
// recent first. Equal times keep path order. Untouched records are never
// selected.
func SelectTopN(reg *Registry, n int) []*Record {
	if n <= 0 {
		return nil
	}

	touched := make([]*Record, 0, reg.Len())
	for _, rec := range reg.Records() {
		if rec.Touched() {
			touched = append(touched, rec)
		}
	}

	sort.SliceStable(touched, func(i, j int) bool {
		a, _ := touched[i].LastTouch()
		b, _ := touched[j].LastTouch()
		return a.When.After(b.When)
	})

	if n < len(touched) {
		touched = touched[:n]
	}
	return touched
}

// SelectForFeed is SelectTopN that fails when n is below one, or when the
// registry has documents but none of them was ever touched.
func SelectForFeed(reg *Registry, n int) ([]*Record, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFeedSize, n)
	}
	selected := SelectTopN(reg, n)
	if len(selected) == 0 && reg.Len() > 0 {
		return nil, ErrNoHistory
	}
	return selected, nil
}
