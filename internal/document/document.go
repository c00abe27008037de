// Package document owns the Markdown rendering pipeline: goldmark with GFM,
// syntax-highlighted code fences, and tolerant-math re-rendering.
package document

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/dshills/mathlens/internal/mathext"
	"github.com/dshills/mathlens/internal/typeset"
)

// Renderer converts Markdown source to HTML. One Renderer is safe to reuse
// for any number of documents; each Render is an independent pass with its
// own typeset flush.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the pipeline. theme names a chroma highlight style for
// fenced code blocks.
func NewRenderer(ts *typeset.Typesetter, theme string) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(theme),
				),
				mathext.New(ts),
			),
		),
	}
}

// Render converts one Markdown document to an HTML fragment.
func (r *Renderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Page wraps an HTML fragment in a minimal standalone document.
func Page(title string, fragment []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`<meta charset="utf-8">`)
	buf.WriteString("\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.Write(fragment)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
