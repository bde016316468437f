package output

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONDocumentWriter writes document reports as JSON.
type JSONDocumentWriter struct{}

// JSONDocumentReport is the JSON output structure for a document report.
type JSONDocumentReport struct {
	RepoPath       string             `json:"repo"`
	ContentDir     string             `json:"contentDir"`
	GeneratedAt    string             `json:"generatedAt"`
	FeedSize       int                `json:"feedSize"`
	TotalDocuments int                `json:"totalDocuments"`
	Untouched      int                `json:"untouched"`
	Items          []JSONDocumentItem `json:"items"`
}

// JSONDocumentItem is the JSON output structure for a single document.
type JSONDocumentItem struct {
	Path         string  `json:"path"`
	Touched      bool    `json:"touched"`
	Selected     bool    `json:"selected"`
	Published    *string `json:"published,omitempty"`
	Updated      *string `json:"updated,omitempty"`
	Commit       string  `json:"commit,omitempty"`
	AuthorName   string  `json:"authorName,omitempty"`
	AuthorEmail  string  `json:"authorEmail,omitempty"`
	Revisions    int     `json:"revisions"`
	Contributors int     `json:"contributors"`
}

// Write outputs the document report as JSON.
func (w *JSONDocumentWriter) Write(report *DocumentReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)
	_, untouched, _ := report.Counts()

	jsonItems := make([]JSONDocumentItem, len(items))
	for i, item := range items {
		jsonItems[i] = JSONDocumentItem{
			Path:         item.Path,
			Touched:      item.Touched,
			Selected:     item.Selected,
			Published:    timePtr(item.FirstTouched, item.Touched),
			Updated:      timePtr(item.LastTouched, item.Touched),
			Commit:       item.LastCommit,
			AuthorName:   item.AuthorName,
			AuthorEmail:  item.AuthorEmail,
			Revisions:    item.Revisions,
			Contributors: item.Contributors,
		}
	}

	return writeJSON(JSONDocumentReport{
		RepoPath:       report.RepoPath,
		ContentDir:     report.ContentDir,
		GeneratedAt:    report.GeneratedAt.Format(time.RFC3339),
		FeedSize:       report.FeedSize,
		TotalDocuments: len(report.Items),
		Untouched:      untouched,
		Items:          jsonItems,
	}, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	out, file, err := OpenWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	_, err = fmt.Fprintln(out, string(jsonData))
	return err
}
