package mathext

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/mathlens/internal/matcher"
	"github.com/dshills/mathlens/internal/typeset"
)

// transformer rewrites eligible text leaves after parsing completes.
type transformer struct {
	ts *typeset.Typesetter
}

var _ parser.ASTTransformer = (*transformer)(nil)

// Transform finds tolerant math spans in the document's text leaves and
// splices typeset nodes in their place. Leaves are collected in a full walk
// first and mutated only afterwards: splicing removes the leaf from the
// tree, which would corrupt a live walker's position.
func (t *transformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var leaves []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		leaf, ok := n.(*ast.Text)
		if !ok || !eligible(leaf) {
			return ast.WalkContinue, nil
		}
		if !bytes.ContainsRune(leaf.Segment.Value(source), '$') {
			return ast.WalkContinue, nil
		}
		leaves = append(leaves, leaf)
		return ast.WalkContinue, nil
	})

	rendered := 0
	for _, leaf := range leaves {
		rendered += t.splice(leaf, source)
	}
	if rendered > 0 {
		_ = t.ts.Flush()
	}
}

// eligible rejects leaves inside verbatim containers and native math. The
// kind-name check covers math nodes contributed by other extensions as well
// as this one's own output.
func eligible(leaf *ast.Text) bool {
	for p := leaf.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock,
			ast.KindHTMLBlock, ast.KindRawHTML:
			return false
		}
		if strings.Contains(p.Kind().String(), "Math") {
			return false
		}
	}
	return true
}

// splice replaces one text leaf with interleaved plain text and typeset
// nodes, and reports how many formulas rendered successfully. A leaf whose
// matches all fail to render is left untouched; a failed match inside an
// otherwise successful leaf is spliced back as its literal source text.
func (t *transformer) splice(leaf *ast.Text, source []byte) int {
	content := string(leaf.Segment.Value(source))
	matches := matcher.Find(content)
	if len(matches) == 0 {
		return 0
	}
	parent := leaf.Parent()
	if parent == nil {
		return 0
	}

	units := make([]typeset.Unit, len(matches))
	rendered := 0
	for i, m := range matches {
		units[i] = t.ts.Render(m.Formula, false)
		if !units[i].Failed {
			rendered++
		}
	}
	if rendered == 0 {
		return 0
	}

	pos := 0
	for i, m := range matches {
		if m.Start > pos {
			parent.InsertBefore(parent, leaf, ast.NewString([]byte(content[pos:m.Start])))
		}
		if units[i].Failed {
			parent.InsertBefore(parent, leaf, ast.NewString([]byte(m.Raw)))
		} else {
			parent.InsertBefore(parent, leaf, NewInlineMath(m.Formula, units[i].Markup))
		}
		pos = m.End
	}
	if pos < len(content) {
		parent.InsertBefore(parent, leaf, ast.NewString([]byte(content[pos:])))
	}
	parent.RemoveChild(parent, leaf)
	return rendered
}
