package output

import (
	"io"
	"os"
	"time"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func formatTouched(item DocumentItem, layout string) string {
	if !item.Touched {
		return ""
	}
	return item.LastTouched.Format(layout)
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

// OpenWriter returns stdout when outputPath is empty, otherwise a created
// file. The returned file is nil for stdout and must be closed by the caller.
func OpenWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func timePtr(t time.Time, ok bool) *string {
	if !ok {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
