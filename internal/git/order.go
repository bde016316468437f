package git

import "sort"

// SortChronological orders change sets by commit time, oldest first.
// Commits with equal times are ordered by generation (ancestors before
// descendants), then by SHA, so the order is stable across backends.
func SortChronological(sets []CommitChangeSet) {
	gen := generations(sets)
	sort.SliceStable(sets, func(i, j int) bool {
		a, b := sets[i].Commit, sets[j].Commit
		if !a.When.Equal(b.When) {
			return a.When.Before(b.When)
		}
		if gen[a.SHA] != gen[b.SHA] {
			return gen[a.SHA] < gen[b.SHA]
		}
		return a.SHA < b.SHA
	})
}

// generations returns, per commit, the length of the longest parent chain
// below it within sets. Parents outside sets (shallow clones) count as 0.
func generations(sets []CommitChangeSet) map[string]int {
	parents := make(map[string][]string, len(sets))
	for _, cs := range sets {
		parents[cs.Commit.SHA] = cs.Commit.Parents
	}

	type frame struct {
		sha  string
		next int
	}

	gen := make(map[string]int, len(sets))
	visiting := make(map[string]bool)

	for _, cs := range sets {
		if _, done := gen[cs.Commit.SHA]; done {
			continue
		}

		stack := []frame{{sha: cs.Commit.SHA}}
		visiting[cs.Commit.SHA] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			ps := parents[top.sha]

			if top.next < len(ps) {
				p := ps[top.next]
				top.next++
				if _, done := gen[p]; done || visiting[p] {
					continue
				}
				if _, known := parents[p]; !known {
					gen[p] = 0
					continue
				}
				visiting[p] = true
				stack = append(stack, frame{sha: p})
				continue
			}

			g := 0
			for _, p := range ps {
				if gen[p]+1 > g {
					g = gen[p] + 1
				}
			}
			gen[top.sha] = g
			delete(visiting, top.sha)
			stack = stack[:len(stack)-1]
		}
	}

	return gen
}
