package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/gitfeed/config"
	"github.com/masmgr/gitfeed/internal/content"
	"github.com/masmgr/gitfeed/internal/document"
	gitpkg "github.com/masmgr/gitfeed/internal/git"
	"github.com/masmgr/gitfeed/internal/history"
)

const progressInterval = 500

// readDocuments lists the content directory and replays the repository
// history onto a fresh registry.
func readDocuments(ctx context.Context, repoPath string, cfg *config.Config, log logrus.FieldLogger) (*gitpkg.HistoryReader, *document.Registry, error) {
	renameMode, err := parseRenameDetectFlag(cfg.History.RenameDetect)
	if err != nil {
		return nil, nil, err
	}
	backend, err := parseBackendFlag(cfg.History.Backend)
	if err != nil {
		return nil, nil, err
	}

	paths, err := content.Scan(content.ScanOptions{
		RepoPath: repoPath,
		Dir:      cfg.Content.Dir,
		Pattern:  cfg.Content.Pattern,
		Include:  cfg.Filters.Include,
		Exclude:  cfg.Filters.Exclude,
	})
	if err != nil {
		return nil, nil, err
	}
	log.WithField("documents", len(paths)).Debug("content scanned")

	reg, err := document.NewRegistryFromPaths(paths)
	if err != nil {
		return nil, nil, err
	}

	reader, err := gitpkg.NewHistoryReader(gitpkg.ReadOptions{
		RepoPath:     repoPath,
		Branch:       cfg.History.Branch,
		Include:      cfg.Filters.Include,
		Exclude:      cfg.Filters.Exclude,
		RenameDetect: renameMode,
		Backend:      backend,
		OnProgress: func(n int) {
			if n%progressInterval == 0 {
				log.WithField("commits", n).Debug("reading history")
			}
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("invalid Git repository - please run from or specify the full path to the root of the project: %w", err)
	}

	if _, err := history.NewWalker(reader, log).Walk(ctx, reg); err != nil {
		return nil, nil, err
	}

	for _, rec := range reg.Untouched() {
		log.WithField("path", rec.Path).Info("document has no attributable history")
	}

	return reader, reg, nil
}
