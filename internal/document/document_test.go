package document

import (
	"strings"
	"testing"

	"github.com/dshills/mathlens/internal/typeset"
)

func newRenderer() *Renderer {
	return NewRenderer(typeset.New(typeset.NewHTMLEngine()), "github")
}

func TestRenderTolerantMath(t *testing.T) {
	out, err := newRenderer().Render([]byte("The identity $ e^{i\\pi} + 1 = 0 $ holds."))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `class="language-math`) {
		t.Errorf("output missing math markup: %q", html)
	}
	if !strings.Contains(html, "The identity ") || !strings.Contains(html, " holds.") {
		t.Errorf("surrounding prose lost: %q", html)
	}
}

func TestRenderCodeFenceHighlighted(t *testing.T) {
	src := "```go\nfunc main() {}\n```\n"
	out, err := newRenderer().Render([]byte(src))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(out), "<pre") {
		t.Errorf("code fence not rendered: %q", out)
	}
}

func TestRenderMathInsideFenceUntouched(t *testing.T) {
	src := "```\n$ x $\n```\n"
	out, err := newRenderer().Render([]byte(src))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(string(out), "language-math") {
		t.Errorf("math rendered inside code fence: %q", out)
	}
}

func TestRenderGFMTable(t *testing.T) {
	src := "| a | b |\n|---|---|\n| $ x $ | 2 |\n"
	out, err := newRenderer().Render([]byte(src))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<table>") {
		t.Errorf("table not rendered: %q", html)
	}
	if !strings.Contains(html, `class="language-math`) {
		t.Errorf("math inside table cell not rendered: %q", html)
	}
}

func TestRenderReuse(t *testing.T) {
	r := newRenderer()
	for _, src := range []string{"$ a $", "plain", "$ b $"} {
		if _, err := r.Render([]byte(src)); err != nil {
			t.Fatalf("Render(%q) error: %v", src, err)
		}
	}
}

func TestPage(t *testing.T) {
	page := string(Page("α & β", []byte("<p>body</p>")))
	if !strings.Contains(page, "<!DOCTYPE html>") {
		t.Error("page missing doctype")
	}
	if !strings.Contains(page, "<title>α &amp; β</title>") {
		t.Errorf("title not escaped: %q", page)
	}
	if !strings.Contains(page, "<p>body</p>") {
		t.Error("page missing fragment")
	}
}
