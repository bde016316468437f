package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// DefaultExtensions are the Markdown extensions enabled when none are configured.
var DefaultExtensions = []string{"tables", "footnotes", "strikethrough", "fenced-code", "autolink"}

var extensionFlags = map[string]blackfriday.Extensions{
	"tables":               blackfriday.Tables,
	"footnotes":            blackfriday.Footnotes,
	"strikethrough":        blackfriday.Strikethrough,
	"fenced-code":          blackfriday.FencedCode,
	"autolink":             blackfriday.Autolink,
	"definition-lists":     blackfriday.DefinitionLists,
	"heading-ids":          blackfriday.HeadingIDs,
	"auto-heading-ids":     blackfriday.AutoHeadingIDs,
	"no-intra-emphasis":    blackfriday.NoIntraEmphasis,
	"space-headings":       blackfriday.SpaceHeadings,
	"hard-line-break":      blackfriday.HardLineBreak,
	"backslash-line-break": blackfriday.BackslashLineBreak,
}

// Renderer converts Markdown document bodies to HTML.
type Renderer struct {
	ext blackfriday.Extensions
}

// NewRenderer creates a renderer with the named extensions.
// A nil list selects DefaultExtensions.
func NewRenderer(extensions []string) (*Renderer, error) {
	if extensions == nil {
		extensions = DefaultExtensions
	}

	var ext blackfriday.Extensions
	for _, name := range extensions {
		flag, ok := extensionFlags[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown markdown extension %q", name)
		}
		ext |= flag
	}
	return &Renderer{ext: ext}, nil
}

// Render returns the HTML for src.
func (r *Renderer) Render(src []byte) string {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	return string(blackfriday.Run(src, blackfriday.WithExtensions(r.ext)))
}
