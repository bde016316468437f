package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/masmgr/gitfeed/internal/document"
)

func init() {
	color.NoColor = true
}

// newTestReport builds a report over three documents: world (newest), hello,
// and an untouched draft. Only the newest document is in the feed.
func newTestReport(t *testing.T) *DocumentReport {
	t.Helper()

	reg, err := document.NewRegistryFromPaths([]string{
		"content/01.hello.md",
		"content/02.world.md",
		"content/03.draft.md",
	})
	if err != nil {
		t.Fatal(err)
	}

	touch := func(path, sha string, when time.Time, name string) {
		rec, ok := reg.Lookup(path)
		if !ok {
			t.Fatalf("missing %s", path)
		}
		rec.Touch(document.Touch{
			Commit: sha,
			When:   when,
			Author: document.Author{Name: name, Email: name + "@example.com"},
		})
	}
	touch("content/01.hello.md", "1111111111aaaa", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "alice")
	touch("content/02.world.md", "2222222222bbbb", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), "bob")
	touch("content/01.hello.md", "3333333333cccc", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "carol_x")

	return NewDocumentReport("/test/repo", "content", reg, 1, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
}

func writeToTemp(t *testing.T, w DocumentReportWriter, report *DocumentReport, top int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out")
	if err := w.Write(report, OutputOptions{Top: top, OutputPath: path}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}
