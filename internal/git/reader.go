package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// HistoryReader reads commit history from a Git repository.
type HistoryReader struct {
	repo        *git.Repository
	opts        ReadOptions
	filterCache map[string]bool
	startTree   *object.Tree
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", opts.RepoPath, err)
	}
	return &HistoryReader{
		repo:        repo,
		opts:        opts,
		filterCache: make(map[string]bool),
	}, nil
}

// ReadChanges reads every commit reachable from the start reference and
// returns them oldest first. Only single-parent commits carry file changes.
// An unborn HEAD yields no commits.
func (r *HistoryReader) ReadChanges(ctx context.Context) ([]CommitChangeSet, error) {
	var (
		results []CommitChangeSet
		err     error
	)
	switch r.opts.Backend {
	case BackendGitCLI:
		results, err = r.readChangesGitCLI(ctx)
	default:
		results, err = r.readChangesGoGit(ctx)
	}
	if err != nil {
		return nil, err
	}

	SortChronological(results)
	return results, nil
}

// resolveStart returns the commit the walk starts from. ok is false when
// HEAD is unborn (no commits yet).
func (r *HistoryReader) resolveStart() (hash plumbing.Hash, ok bool, err error) {
	rev := strings.TrimSpace(r.opts.Branch)
	if rev == "" || strings.EqualFold(rev, "HEAD") {
		ref, err := r.repo.Head()
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, false, nil
		}
		if err != nil {
			return plumbing.ZeroHash, false, fmt.Errorf("resolve HEAD: %w", err)
		}
		return ref.Hash(), true, nil
	}

	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, false, fmt.Errorf("resolve %s: %w", rev, err)
	}
	return *h, true, nil
}

func (r *HistoryReader) readChangesGoGit(ctx context.Context) ([]CommitChangeSet, error) {
	start, ok, err := r.resolveStart()
	if err != nil || !ok {
		return nil, err
	}

	cIter, err := r.repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	defer cIter.Close()

	var results []CommitChangeSet
	processed := 0

	err = cIter.ForEach(func(c *object.Commit) error {
		cs := CommitChangeSet{Commit: commitInfo(c)}

		// Merges and the root commit are never diffed.
		if c.NumParents() == 1 {
			changes, err := r.getCommitChanges(ctx, c)
			if err != nil {
				return fmt.Errorf("diff commit %s: %w", c.Hash, err)
			}
			cs.Changes = changes
		}

		results = append(results, cs)

		processed++
		if r.opts.OnProgress != nil {
			r.opts.OnProgress(processed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func commitInfo(c *object.Commit) CommitInfo {
	// Extract first line of commit message
	message := c.Message
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}

	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}

	return CommitInfo{
		SHA:     c.Hash.String(),
		When:    c.Committer.When,
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Message: message,
		Parents: parents,
	}
}

// getCommitChanges diffs a single-parent commit against its parent.
func (r *HistoryReader) getCommitChanges(ctx context.Context, c *object.Commit) ([]FileChange, error) {
	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}

	diff, err := object.DiffTreeWithOptions(ctx, parentTree, tree, r.diffOptions())
	if err != nil {
		return nil, err
	}

	changes := make([]FileChange, 0, len(diff))
	for _, change := range diff {
		fc, err := fileChangeFrom(change)
		if err != nil {
			return nil, err
		}
		if fc.Path == "" {
			continue
		}

		matches, err := r.matchesFilters(fc.Path)
		if err != nil {
			return nil, err
		}
		if !matches {
			continue
		}

		changes = append(changes, fc)
	}

	return changes, nil
}

func (r *HistoryReader) diffOptions() *object.DiffTreeOptions {
	switch r.opts.RenameDetect {
	case RenameDetectOff:
		return nil
	case RenameDetectAggressive:
		return object.DefaultDiffTreeOptions
	default:
		opts := *object.DefaultDiffTreeOptions
		opts.OnlyExactRenames = true
		return &opts
	}
}

func fileChangeFrom(change *object.Change) (FileChange, error) {
	action, err := change.Action()
	if err != nil {
		return FileChange{}, err
	}

	switch action {
	case merkletrie.Insert:
		return FileChange{Path: change.To.Name, Kind: ChangeKindAdded}, nil
	case merkletrie.Delete:
		return FileChange{Path: change.From.Name, Kind: ChangeKindDeleted}, nil
	default:
		if change.From.Name != change.To.Name {
			return FileChange{Path: change.To.Name, OldPath: change.From.Name, Kind: ChangeKindRenamed}, nil
		}
		return FileChange{Path: change.To.Name, Kind: ChangeKindModified}, nil
	}
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *HistoryReader) matchesFilters(path string) (bool, error) {
	if len(r.opts.Include) == 0 && len(r.opts.Exclude) == 0 {
		return true, nil
	}
	if cached, ok := r.filterCache[path]; ok {
		return cached, nil
	}

	matched, err := MatchFilters(path, r.opts.Include, r.opts.Exclude)
	if err != nil {
		return false, err
	}
	r.filterCache[path] = matched
	return matched, nil
}

// MatchFilters reports whether path passes the include/exclude glob lists.
// Exclude patterns win; an empty include list accepts everything.
func MatchFilters(path string, include, exclude []string) (bool, error) {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	if len(include) == 0 {
		return true, nil
	}

	for _, pattern := range include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
