package output

import (
	"time"

	"github.com/masmgr/gitfeed/internal/document"
)

// Compile-time interface conformance checks.
var (
	_ DocumentReportWriter = (*ConsoleDocumentWriter)(nil)
	_ DocumentReportWriter = (*JSONDocumentWriter)(nil)
	_ DocumentReportWriter = (*CSVDocumentWriter)(nil)
	_ DocumentReportWriter = (*MarkdownDocumentWriter)(nil)
	_ DocumentReportWriter = (*CIDocumentWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int // row limit; 0 prints every document
	OutputPath string
}

// DocumentItem is one document row of a report.
type DocumentItem struct {
	Path         string
	Touched      bool
	Selected     bool // part of the generated feed
	FirstTouched time.Time
	LastTouched  time.Time
	LastCommit   string
	AuthorName   string
	AuthorEmail  string
	Revisions    int
	Contributors int
}

// DocumentReport holds the reconstructed document registry.
type DocumentReport struct {
	RepoPath    string
	ContentDir  string
	GeneratedAt time.Time
	FeedSize    int
	Items       []DocumentItem // touched by recency, then untouched by path
}

// NewDocumentReport builds a report from reg. The first feedSize documents by
// recency are marked as selected.
func NewDocumentReport(repoPath, contentDir string, reg *document.Registry, feedSize int, generatedAt time.Time) *DocumentReport {
	report := &DocumentReport{
		RepoPath:    repoPath,
		ContentDir:  contentDir,
		GeneratedAt: generatedAt,
		FeedSize:    feedSize,
	}

	for i, rec := range document.SelectTopN(reg, reg.Len()) {
		item := DocumentItem{
			Path:         rec.Path,
			Touched:      true,
			Selected:     i < feedSize,
			Revisions:    rec.Revisions(),
			Contributors: rec.ContributorCount(),
		}
		item.FirstTouched, _ = rec.FirstTouched()
		if last, ok := rec.LastTouch(); ok {
			item.LastTouched = last.When
			item.LastCommit = last.Commit
			item.AuthorName = last.Author.Name
			item.AuthorEmail = last.Author.Email
		}
		report.Items = append(report.Items, item)
	}
	for _, rec := range reg.Untouched() {
		report.Items = append(report.Items, DocumentItem{Path: rec.Path})
	}
	return report
}

// Counts returns the number of touched, untouched and selected documents.
func (r *DocumentReport) Counts() (touched, untouched, selected int) {
	for _, item := range r.Items {
		switch {
		case !item.Touched:
			untouched++
		case item.Selected:
			touched++
			selected++
		default:
			touched++
		}
	}
	return touched, untouched, selected
}

// DocumentReportWriter writes document reports.
type DocumentReportWriter interface {
	Write(report *DocumentReport, options OutputOptions) error
}

// NewDocumentReportWriter creates a report writer for the specified format.
func NewDocumentReportWriter(format OutputFormat) DocumentReportWriter {
	switch format {
	case FormatJSON:
		return &JSONDocumentWriter{}
	case FormatCSV:
		return &CSVDocumentWriter{}
	case FormatMarkdown:
		return &MarkdownDocumentWriter{}
	case FormatCI:
		return &CIDocumentWriter{}
	default:
		return &ConsoleDocumentWriter{}
	}
}
