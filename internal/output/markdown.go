package output

import (
	"fmt"
	"strings"
)

// MarkdownDocumentWriter writes document reports as Markdown.
type MarkdownDocumentWriter struct{}

// Write outputs the document report as Markdown.
func (w *MarkdownDocumentWriter) Write(report *DocumentReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := OpenWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	touched, untouched, selected := report.Counts()

	fmt.Fprintln(out, "# Document History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Content:** `%s`\n\n", report.ContentDir)
	fmt.Fprintf(out, "**Documents:** %d (touched %d, untouched %d, in feed %d)\n\n",
		len(report.Items), touched, untouched, selected)

	fmt.Fprintln(out, "| # | Feed | Path | Updated | Commit | Author | Revisions |")
	fmt.Fprintln(out, "|---|------|------|---------|--------|--------|-----------|")

	for i, item := range items {
		if !item.Touched {
			fmt.Fprintf(out, "| %d | | `%s` | _untouched_ | | | 0 |\n", i+1, item.Path)
			continue
		}
		mark := ""
		if item.Selected {
			mark = "✅"
		}
		fmt.Fprintf(out, "| %d | %s | `%s` | %s | `%s` | %s | %d |\n",
			i+1,
			mark,
			item.Path,
			formatTouched(item, reportDateLayout),
			shortSHA(item.LastCommit),
			escapeMarkdown(item.AuthorName),
			item.Revisions,
		)
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
