package document

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicatePath is returned when a path is inserted twice.
var ErrDuplicatePath = errors.New("duplicate document path")

// Registry maps document paths to their records.
type Registry struct {
	records map[string]*Record
	paths   []string
	sorted  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*Record),
		sorted:  true,
	}
}

// NewRegistryFromPaths seeds a registry with untouched records.
func NewRegistryFromPaths(paths []string) (*Registry, error) {
	reg := NewRegistry()
	for _, p := range paths {
		if err := reg.InsertPending(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// InsertPending adds an untouched record for path.
func (r *Registry) InsertPending(path string) error {
	if _, exists := r.records[path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
	}
	r.records[path] = NewRecord(path)
	r.paths = append(r.paths, path)
	r.sorted = false
	return nil
}

// Lookup returns the record for path, if tracked.
func (r *Registry) Lookup(path string) (*Record, bool) {
	rec, ok := r.records[path]
	return rec, ok
}

// Len returns the number of tracked documents.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns all records in path order.
func (r *Registry) Records() []*Record {
	r.sortPaths()
	out := make([]*Record, len(r.paths))
	for i, p := range r.paths {
		out[i] = r.records[p]
	}
	return out
}

// Untouched returns the records no commit has touched, in path order.
func (r *Registry) Untouched() []*Record {
	var out []*Record
	for _, rec := range r.Records() {
		if !rec.Touched() {
			out = append(out, rec)
		}
	}
	return out
}

// TopNByRecency returns up to n touched records, most recent first.
func (r *Registry) TopNByRecency(n int) []*Record {
	return SelectTopN(r, n)
}

func (r *Registry) sortPaths() {
	if r.sorted {
		return
	}
	sort.Strings(r.paths)
	r.sorted = true
}
