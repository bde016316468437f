package output

import (
	"encoding/csv"
	"strconv"
)

// CSVDocumentWriter writes document reports as CSV.
type CSVDocumentWriter struct{}

// Write outputs the document report as CSV.
func (w *CSVDocumentWriter) Write(report *DocumentReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := OpenWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	headers := []string{"Path", "Touched", "Selected", "Published", "Updated", "Commit",
		"AuthorName", "AuthorEmail", "Revisions", "Contributors"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range items {
		published := ""
		if item.Touched {
			published = item.FirstTouched.Format(reportDateTimeLayout)
		}
		row := []string{
			item.Path,
			strconv.FormatBool(item.Touched),
			strconv.FormatBool(item.Selected),
			published,
			formatTouched(item, reportDateTimeLayout),
			item.LastCommit,
			item.AuthorName,
			item.AuthorEmail,
			strconv.Itoa(item.Revisions),
			strconv.Itoa(item.Contributors),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
