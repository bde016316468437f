package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleDocumentWriter writes document reports as a terminal table.
type ConsoleDocumentWriter struct{}

// Write outputs the document report to the console.
func (w *ConsoleDocumentWriter) Write(report *DocumentReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := OpenWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	touched, untouched, selected := report.Counts()

	color.New(color.FgGreen).Fprintln(out, "Document History")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Content: %s\n", report.ContentDir)
	fmt.Fprintf(out, "Documents: %d (touched %d, untouched %d, in feed %d)\n\n",
		len(report.Items), touched, untouched, selected)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFeed\tPath\tUpdated\tCommit\tAuthor\tRevisions")

	for i, item := range items {
		if !item.Touched {
			fmt.Fprintf(tw, "%d\t\t%s\t%s\t\t\t0\n", i+1, item.Path, color.YellowString("untouched"))
			continue
		}
		mark := ""
		if item.Selected {
			mark = color.GreenString("*")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			i+1,
			mark,
			item.Path,
			formatTouched(item, reportDateLayout),
			shortSHA(item.LastCommit),
			item.AuthorName,
			item.Revisions,
		)
	}

	return tw.Flush()
}
