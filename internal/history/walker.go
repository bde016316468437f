// Package history replays commit history onto a document registry.
//
// Only single-parent commits are attributed. Merge commits are assumed not to
// introduce content worth attributing, and the root commit has no parent to
// diff against, so both are skipped. A document whose only changes arrived
// through merges therefore stays untouched.
package history

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/gitfeed/internal/document"
	"github.com/masmgr/gitfeed/internal/git"
)

// Stats summarizes a walk.
type Stats struct {
	Commits       int // commits visited
	Attributed    int // single-parent commits replayed
	SkippedMerges int
	SkippedRoots  int
	Touches       int // record updates applied
	Untracked     int // changed paths with no registry entry
}

// Walker reads history and applies it to a registry.
type Walker struct {
	reader git.RepositoryReader
	log    logrus.FieldLogger
}

// NewWalker creates a walker over reader. A nil logger discards output.
func NewWalker(reader git.RepositoryReader, log logrus.FieldLogger) *Walker {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Walker{reader: reader, log: log}
}

// Walk reads the full history and touches every registry record changed by a
// single-parent commit. Any read error aborts the walk.
func (w *Walker) Walk(ctx context.Context, reg *document.Registry) (Stats, error) {
	changeSets, err := w.reader.ReadChanges(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("read history: %w", err)
	}

	stats := w.apply(reg, changeSets)

	w.log.WithFields(logrus.Fields{
		"commits":    stats.Commits,
		"attributed": stats.Attributed,
		"merges":     stats.SkippedMerges,
		"roots":      stats.SkippedRoots,
		"touches":    stats.Touches,
		"untracked":  stats.Untracked,
	}).Debug("history walk complete")

	return stats, nil
}

func (w *Walker) apply(reg *document.Registry, changeSets []git.CommitChangeSet) Stats {
	var stats Stats

	for _, cs := range changeSets {
		stats.Commits++

		switch n := len(cs.Commit.Parents); {
		case n == 0:
			stats.SkippedRoots++
			w.log.WithField("commit", cs.Commit.SHA).Debug("skipping root commit")
			continue
		case n > 1:
			stats.SkippedMerges++
			w.log.WithField("commit", cs.Commit.SHA).Debug("skipping merge commit")
			continue
		}

		stats.Attributed++
		touch := document.Touch{
			Commit: cs.Commit.SHA,
			When:   cs.Commit.When,
			Author: document.Author{
				Name:  cs.Commit.Author.Name,
				Email: cs.Commit.Author.Email,
			},
		}

		for _, change := range cs.Changes {
			rec, ok := reg.Lookup(change.Path)
			if !ok {
				stats.Untracked++
				continue
			}
			rec.Touch(touch)
			stats.Touches++
		}
	}

	return stats
}
