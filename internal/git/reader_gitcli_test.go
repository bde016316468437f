package git

import (
	"testing"
	"time"
)

func TestParseGitRawEntries_RenameAndModify(t *testing.T) {
	// Body bytes are what comes after the pretty header line.
	// For -z formats, entries are NUL-separated and concatenated.
	body := []byte{}

	// Modify a.txt
	body = append(body, []byte(":100644 100644 1111111 2222222 M")...)
	body = append(body, 0)
	body = append(body, []byte("a.txt")...)
	body = append(body, 0)

	// Rename old.md -> new.md
	body = append(body, []byte(":100644 100644 3333333 4444444 R100")...)
	body = append(body, 0)
	body = append(body, []byte("old.md")...)
	body = append(body, 0)
	body = append(body, []byte("new.md")...)
	body = append(body, 0)

	raw, _, err := parseGitRawEntries(body)
	if err != nil {
		t.Fatalf("parseGitRawEntries: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("raw entries = %d, expected 2", len(raw))
	}
	if raw[0].status != "M" || raw[0].path != "a.txt" || raw[0].oldPath != "" {
		t.Fatalf("raw[0] = %#v", raw[0])
	}
	if raw[1].status != "R100" || raw[1].path != "new.md" || raw[1].oldPath != "old.md" {
		t.Fatalf("raw[1] = %#v", raw[1])
	}
}

func TestParseGitRawEntries_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "Missing NUL", body: []byte(":100644 100644 aaa bbb M")},
		{name: "Short meta", body: append([]byte(":100644 M"), 0)},
		{name: "Missing path", body: append([]byte(":100644 100644 aaa bbb M"), 0)},
		{name: "Bad mode", body: append([]byte(":10x644 100644 aaa bbb M"), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseGitRawEntries(tt.body); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestKindFromGitStatus(t *testing.T) {
	tests := []struct {
		status   string
		oldPath  string
		wantKind ChangeKind
		wantOld  string
	}{
		{status: "A", wantKind: ChangeKindAdded},
		{status: "C75", oldPath: "src.md", wantKind: ChangeKindAdded},
		{status: "M", wantKind: ChangeKindModified},
		{status: "D", wantKind: ChangeKindDeleted},
		{status: "R100", oldPath: "old.go", wantKind: ChangeKindRenamed, wantOld: "old.go"},
		{status: "", wantKind: ChangeKindModified},
	}

	for _, tt := range tests {
		gotKind, gotOld := kindFromGitStatus(tt.status, tt.oldPath)
		if gotKind != tt.wantKind || gotOld != tt.wantOld {
			t.Fatalf("kindFromGitStatus(%q,%q) = (%v,%q), want (%v,%q)", tt.status, tt.oldPath, gotKind, gotOld, tt.wantKind, tt.wantOld)
		}
	}
}

// gitLogRecord builds one record of `git log --raw -z` output for the
// pretty format used by readChangesGitCLI.
func gitLogRecord(sha, parents, date, name, email, subject string, raw ...string) []byte {
	rec := []byte{0x1e}
	for i, f := range []string{sha, parents, date, name, email, subject} {
		if i > 0 {
			rec = append(rec, 0)
		}
		rec = append(rec, f...)
	}
	rec = append(rec, '\n')
	for _, r := range raw {
		rec = append(rec, r...)
		rec = append(rec, 0)
	}
	return rec
}

func TestParseGitLog(t *testing.T) {
	var out []byte
	out = append(out, gitLogRecord("ccc", "aaa bbb", "2024-01-03T00:00:00+02:00", "M", "m@example.com", "merge")...)
	out = append(out, gitLogRecord("bbb", "aaa", "2024-01-02T00:00:00Z", "Bob", "bob@example.com", "edit",
		":100644 100644 1111111 2222222 M", "content/01.a.md",
		":100644 100644 3333333 4444444 M", "README.md",
		":160000 160000 5555555 6666666 M", "vendor/sub")...)
	out = append(out, gitLogRecord("aaa", "", "2024-01-01T00:00:00Z", "Ann", "ann@example.com", "root",
		":000000 100644 0000000 1111111 A", "content/01.a.md")...)

	r := &HistoryReader{
		opts:        ReadOptions{Include: []string{"content/**", "vendor/**"}},
		filterCache: make(map[string]bool),
	}

	sets, err := r.parseGitLog(out)
	if err != nil {
		t.Fatalf("parseGitLog: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("sets = %d, expected 3", len(sets))
	}

	merge := sets[0]
	if merge.Commit.IsSingleParent() || len(merge.Changes) != 0 {
		t.Errorf("merge = %+v, expected two parents and no changes", merge)
	}
	if _, offset := merge.Commit.When.Zone(); offset != 2*3600 {
		t.Errorf("merge offset = %d, expected 7200", offset)
	}

	edit := sets[1]
	if got := changedPaths(edit); len(got) != 1 || got[0] != "content/01.a.md" {
		t.Errorf("edit changes = %v, expected [content/01.a.md]", got)
	}
	if edit.Commit.Author.Name != "Bob" || edit.Commit.Author.Email != "bob@example.com" {
		t.Errorf("edit author = %+v", edit.Commit.Author)
	}
	if !edit.Commit.When.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("edit when = %v", edit.Commit.When)
	}

	root := sets[2]
	if len(root.Commit.Parents) != 0 || len(root.Changes) != 0 {
		t.Errorf("root = %+v, expected no parents and no changes", root)
	}
}

func TestParseGitLog_BadHeader(t *testing.T) {
	r := &HistoryReader{filterCache: make(map[string]bool)}

	if _, err := r.parseGitLog([]byte("\x1eabc\x00def\n")); err == nil {
		t.Error("expected error for short header")
	}
	bad := gitLogRecord("aaa", "", "yesterday", "A", "a@example.com", "root")
	if _, err := r.parseGitLog(bad); err == nil {
		t.Error("expected error for unparseable date")
	}
}
