package mathext

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// inlineRenderer emits the markup stored on InlineMath nodes.
type inlineRenderer struct{}

var _ renderer.NodeRenderer = (*inlineRenderer)(nil)

// RegisterFuncs implements renderer.NodeRenderer.
func (r *inlineRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMath, r.render)
}

func (r *inlineRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(n.(*InlineMath).Markup)
	return ast.WalkSkipChildren, nil
}
