// Package feed turns selected documents into a rendered Atom feed.
package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/masmgr/gitfeed/internal/document"
	"github.com/masmgr/gitfeed/internal/git"
)

// Options configures an Assembler.
type Options struct {
	BaseURL  string // entry id and link prefix
	Title    string
	Link     string // feed link; defaults to BaseURL
	Version  string
	RepoPath string // working tree holding document bodies
	Now      func() time.Time
}

// Assembler builds feed entries from document records.
type Assembler struct {
	opts  Options
	blobs git.BlobResolver
	md    *Renderer
	log   logrus.FieldLogger
}

// NewAssembler creates an assembler resolving blob hashes through blobs.
func NewAssembler(opts Options, blobs git.BlobResolver, md *Renderer, log logrus.FieldLogger) *Assembler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Link == "" {
		opts.Link = opts.BaseURL
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Assembler{opts: opts, blobs: blobs, md: md, log: log}
}

// FeedID returns the stable feed identifier derived from baseURL.
func FeedID(baseURL string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(baseURL)).String()
}

// Build assembles the feed for records, keeping their order.
func (a *Assembler) Build(records []*document.Record) (*Feed, error) {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entry, err := a.Entry(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &Feed{
		ID:      FeedID(a.opts.BaseURL),
		Title:   a.opts.Title,
		Link:    a.opts.Link,
		Updated: formatTime(a.opts.Now().UTC()),
		Version: a.opts.Version,
		Entries: entries,
	}, nil
}

// Entry builds the feed entry for a single record.
func (a *Assembler) Entry(rec *document.Record) (Entry, error) {
	last, ok := rec.LastTouch()
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", rec.Path, ErrUntouched)
	}
	first, _ := rec.FirstTouched()
	if last.Author.Name == "" || last.Author.Email == "" {
		return Entry{}, fmt.Errorf("%s: %w", rec.Path, ErrMissingAuthor)
	}

	title, err := TitleFromPath(rec.Path)
	if err != nil {
		return Entry{}, err
	}

	hash, err := a.blobs.BlobHash(rec.Path)
	if err != nil {
		return Entry{}, fmt.Errorf("resolve blob for %s: %w", rec.Path, err)
	}

	body, err := os.ReadFile(filepath.Join(a.opts.RepoPath, filepath.FromSlash(rec.Path)))
	if err != nil {
		return Entry{}, fmt.Errorf("read document: %w", err)
	}

	link := strings.TrimRight(a.opts.BaseURL, "/") + "/" + hash
	a.log.WithFields(logrus.Fields{
		"path":   rec.Path,
		"blob":   hash,
		"commit": last.Commit,
	}).Debug("feed entry")

	return Entry{
		ID:        link,
		Title:     title,
		Link:      link,
		Published: formatTime(first),
		Updated:   formatTime(last.When),
		Author:    Author{Name: last.Author.Name, Email: last.Author.Email},
		Content:   a.md.Render(body),
		Path:      rec.Path,
	}, nil
}
