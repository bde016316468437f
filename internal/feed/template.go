package feed

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed atom.xml.tmpl
var defaultTemplate string

var templateFuncs = template.FuncMap{
	"xml": html.EscapeString,
}

// LoadTemplate parses the feed template at path, or the built-in Atom
// template when path is empty.
func LoadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.New("atom").Funcs(templateFuncs).Parse(defaultTemplate)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed template: %w", err)
	}
	tmpl, err := template.New(filepath.Base(path)).Funcs(templateFuncs).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed template %s: %w", path, err)
	}
	return tmpl, nil
}

// Render executes tmpl against feed and returns the complete document.
func Render(tmpl *template.Template, feed *Feed) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, feed); err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}
	return buf.Bytes(), nil
}
