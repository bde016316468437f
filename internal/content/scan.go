// Package content lists the documents tracked by the feed.
package content

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/gitfeed/internal/git"
)

// ScanOptions configures a directory scan.
type ScanOptions struct {
	RepoPath string   // repository root; scanned paths are relative to it
	Dir      string   // content directory, relative to RepoPath
	Pattern  string   // glob relative to Dir, e.g. "*" or "**/*.md"
	Include  []string // repo-relative globs a document must match
	Exclude  []string // repo-relative globs that drop a document
}

// Scan returns the repo-relative, slash-separated paths of the regular files
// under Dir matching Pattern, sorted.
func Scan(opts ScanOptions) ([]string, error) {
	dir := strings.Trim(path.Clean(strings.ReplaceAll(opts.Dir, "\\", "/")), "/")
	if dir == "" || dir == "." {
		return nil, fmt.Errorf("content directory must be a subdirectory of the repository")
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}

	root := opts.RepoPath
	if root == "" {
		root = "."
	}

	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(dir)))
	if err != nil {
		return nil, fmt.Errorf("list content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("list content directory: %s is not a directory", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(root), path.Join(dir, pattern), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list content directory: %w", err)
	}

	docs := make([]string, 0, len(matches))
	for _, m := range matches {
		ok, err := git.MatchFilters(m, opts.Include, opts.Exclude)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, m)
		}
	}

	sort.Strings(docs)
	return docs, nil
}
