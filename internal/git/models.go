package git

import (
	"strings"
	"time"
)

// CommitInfo represents minimal information about a Git commit.
type CommitInfo struct {
	SHA     string
	When    time.Time // committer time, in the committer's UTC offset
	Author  AuthorInfo
	Message string
	Parents []string
}

// IsSingleParent reports whether the commit is neither a merge nor a root.
func (c CommitInfo) IsSingleParent() bool {
	return len(c.Parents) == 1
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// FileChange represents a file change within a commit.
type FileChange struct {
	Path    string // new-side path; the removed path for deletions
	OldPath string // For renames
	Kind    ChangeKind
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// CommitChangeSet bundles a commit with its file changes.
// Changes is empty for merge and root commits, which are never diffed.
type CommitChangeSet struct {
	Commit  CommitInfo
	Changes []FileChange
}

// RenameDetectMode controls how file renames are detected.
type RenameDetectMode int

const (
	RenameDetectOff RenameDetectMode = iota
	RenameDetectSimple
	RenameDetectAggressive
)

// ParseRenameDetectMode parses a rename detection flag value.
func ParseRenameDetectMode(s string) RenameDetectMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return RenameDetectOff
	case "aggressive", "auto":
		return RenameDetectAggressive
	default:
		return RenameDetectSimple
	}
}

// Backend selects how history is read.
type Backend string

const (
	BackendGoGit  Backend = "gogit"
	BackendGitCLI Backend = "gitcli"
)

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath     string
	Branch       string   // empty or "HEAD" walks from HEAD
	Include      []string // Glob patterns to include
	Exclude      []string // Glob patterns to exclude
	RenameDetect RenameDetectMode
	Backend      Backend
	OnProgress   func(processed int)
}
