package mathext

import "github.com/yuin/goldmark/ast"

// InlineMath is a tolerant math span that has been typeset. The markup is
// produced at transform time; rendering only writes it out.
type InlineMath struct {
	ast.BaseInline

	// Formula is the trimmed formula text.
	Formula string

	// Markup is the typeset output for the formula.
	Markup string
}

// KindInlineMath is the node kind for typeset tolerant math.
var KindInlineMath = ast.NewNodeKind("TolerantInlineMath")

// Kind implements ast.Node.
func (n *InlineMath) Kind() ast.NodeKind {
	return KindInlineMath
}

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Formula": n.Formula,
	}, nil)
}

// NewInlineMath creates a typeset math node.
func NewInlineMath(formula, markup string) *InlineMath {
	return &InlineMath{Formula: formula, Markup: markup}
}
