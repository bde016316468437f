package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIDocumentWriter writes document reports as NDJSON (one JSON object per line) for CI pipelines.
type CIDocumentWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type           string `json:"type"`
	TotalDocuments int    `json:"totalDocuments"`
	Touched        int    `json:"touched"`
	Untouched      int    `json:"untouched"`
	Selected       int    `json:"selected"`
}

// CIDocumentEntry represents a single document entry in CI output.
type CIDocumentEntry struct {
	Type     string  `json:"type"`
	Path     string  `json:"path"`
	Touched  bool    `json:"touched"`
	Selected bool    `json:"selected"`
	Updated  *string `json:"updated,omitempty"`
}

// Write outputs the document report as NDJSON.
func (w *CIDocumentWriter) Write(report *DocumentReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := OpenWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	touched, untouched, selected := report.Counts()
	summary := CISummary{
		Type:           "summary",
		TotalDocuments: len(report.Items),
		Touched:        touched,
		Untouched:      untouched,
		Selected:       selected,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, item := range items {
		entry := CIDocumentEntry{
			Type:     "document",
			Path:     item.Path,
			Touched:  item.Touched,
			Selected: item.Selected,
			Updated:  timePtr(item.LastTouched, item.Touched),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
