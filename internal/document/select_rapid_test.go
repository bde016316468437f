package document

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// --- Generators ---

type touchPlan struct {
	paths   []string
	touches []plannedTouch
}

type plannedTouch struct {
	path string
	when time.Time
}

func genTouchPlan() *rapid.Generator[touchPlan] {
	return rapid.Custom(func(t *rapid.T) touchPlan {
		count := rapid.IntRange(0, 30).Draw(t, "docs")
		plan := touchPlan{paths: make([]string, count)}
		for i := 0; i < count; i++ {
			plan.paths[i] = fmt.Sprintf("content/%02d.doc%d.md", i, i)
		}
		if count == 0 {
			return plan
		}

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		touches := rapid.IntRange(0, 100).Draw(t, "touches")
		when := base
		for i := 0; i < touches; i++ {
			idx := rapid.IntRange(0, count-1).Draw(t, fmt.Sprintf("doc%d", i))
			// Chronological walk order: time never goes backwards.
			when = when.Add(time.Duration(rapid.IntRange(0, 48).Draw(t, fmt.Sprintf("gap%d", i))) * time.Hour)
			plan.touches = append(plan.touches, plannedTouch{path: plan.paths[idx], when: when})
		}
		return plan
	})
}

func applyPlan(t *rapid.T, plan touchPlan) *Registry {
	reg, err := NewRegistryFromPaths(plan.paths)
	if err != nil {
		t.Fatalf("NewRegistryFromPaths: %v", err)
	}
	for _, tc := range plan.touches {
		rec, _ := reg.Lookup(tc.path)
		rec.Touch(Touch{When: tc.when, Author: Author{Name: "A", Email: "a@example.com"}})
	}
	return reg
}

// --- Property Tests ---

func TestRapidRecord_FirstTouchNeverChanges(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plan := genTouchPlan().Draw(t, "plan")
		reg, _ := NewRegistryFromPaths(plan.paths)

		firsts := make(map[string]time.Time)
		for _, tc := range plan.touches {
			rec, _ := reg.Lookup(tc.path)
			rec.Touch(Touch{When: tc.when})

			first, ok := rec.FirstTouched()
			if !ok {
				t.Fatalf("%s: FirstTouched unset after touch", tc.path)
			}
			if prev, seen := firsts[tc.path]; seen && !prev.Equal(first) {
				t.Fatalf("%s: FirstTouched changed from %v to %v", tc.path, prev, first)
			}
			firsts[tc.path] = first
		}
	})
}

func TestRapidRecord_LastTouchIsLatestApplied(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plan := genTouchPlan().Draw(t, "plan")
		reg := applyPlan(t, plan)

		expected := make(map[string]time.Time)
		for _, tc := range plan.touches {
			expected[tc.path] = tc.when
		}

		for _, rec := range reg.Records() {
			want, touched := expected[rec.Path]
			last, ok := rec.LastTouch()
			if ok != touched {
				t.Fatalf("%s: touched = %v, expected %v", rec.Path, ok, touched)
			}
			if touched && !last.When.Equal(want) {
				t.Fatalf("%s: LastTouch = %v, expected %v", rec.Path, last.When, want)
			}
			_, hasFirst := rec.FirstTouched()
			if hasFirst != ok {
				t.Fatalf("%s: first/last initialization disagree (%v, %v)", rec.Path, hasFirst, ok)
			}
		}
	})
}

func TestRapidSelectTopN_SortedAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plan := genTouchPlan().Draw(t, "plan")
		reg := applyPlan(t, plan)
		n := rapid.IntRange(0, 40).Draw(t, "n")

		selected := SelectTopN(reg, n)

		touchedCount := 0
		for _, rec := range reg.Records() {
			if rec.Touched() {
				touchedCount++
			}
		}

		if len(selected) > n {
			t.Fatalf("len = %d exceeds n = %d", len(selected), n)
		}
		if len(selected) > touchedCount {
			t.Fatalf("len = %d exceeds touched count %d", len(selected), touchedCount)
		}
		if n > 0 && len(selected) != min(n, touchedCount) {
			t.Fatalf("len = %d, expected %d", len(selected), min(n, touchedCount))
		}

		for i, rec := range selected {
			if !rec.Touched() {
				t.Fatalf("selected[%d] %s is untouched", i, rec.Path)
			}
			if i == 0 {
				continue
			}
			prev, _ := selected[i-1].LastTouch()
			cur, _ := rec.LastTouch()
			if cur.When.After(prev.When) {
				t.Fatalf("selected[%d] newer than selected[%d]", i, i-1)
			}
			if cur.When.Equal(prev.When) && rec.Path < selected[i-1].Path {
				t.Fatalf("tie at %d not in path order: %s before %s", i, selected[i-1].Path, rec.Path)
			}
		}
	})
}
