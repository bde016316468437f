package git

import (
	"errors"
	"fmt"
)

// ErrNoCommits is returned when the start reference has no commits.
var ErrNoCommits = errors.New("repository has no commits")

// BlobResolver resolves the blob identity of a path in the current tree.
type BlobResolver interface {
	BlobHash(path string) (string, error)
}

// Compile-time interface conformance check.
var _ BlobResolver = (*HistoryReader)(nil)

// BlobHash returns the hash of the blob stored at path in the tree of the
// start reference.
func (r *HistoryReader) BlobHash(path string) (string, error) {
	if r.startTree == nil {
		start, ok, err := r.resolveStart()
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNoCommits
		}

		commit, err := r.repo.CommitObject(start)
		if err != nil {
			return "", fmt.Errorf("load commit %s: %w", start, err)
		}
		tree, err := commit.Tree()
		if err != nil {
			return "", fmt.Errorf("load tree of %s: %w", start, err)
		}
		r.startTree = tree
	}

	entry, err := r.startTree.FindEntry(path)
	if err != nil {
		return "", fmt.Errorf("find %s in current tree: %w", path, err)
	}
	return entry.Hash.String(), nil
}
