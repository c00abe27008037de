// Package mathext is a goldmark extension that re-renders tolerant inline
// math in the parsed document tree.
//
// Strict dollar-math parsers reject "$ formula $" (padded delimiters), so the
// span reaches the output tree as literal text. This extension scans the
// finished tree for those spans and splices typeset replacements in place,
// leaving code spans, code blocks, raw HTML, and already-valid math alone.
package mathext

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/dshills/mathlens/internal/typeset"
)

// Extension wires the tolerant-math transformer and renderer into goldmark.
type Extension struct {
	ts *typeset.Typesetter
}

// New creates the extension. All formulas found during a document transform
// are typeset through ts, with one flush per document.
func New(ts *typeset.Typesetter) *Extension {
	return &Extension{ts: ts}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&transformer{ts: e.ts}, 200),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&inlineRenderer{}, 200),
	))
}
