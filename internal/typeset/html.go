package typeset

import (
	"html"
	"strings"
)

// HTMLEngine renders formulas as math-tagged HTML code elements, the form
// client-side typesetters (KaTeX, MathJax) hydrate in the browser. Rendering
// is immediate, so Flush is a no-op; validation failures are the reachable
// render errors.
type HTMLEngine struct{}

// NewHTMLEngine creates an HTMLEngine.
func NewHTMLEngine() *HTMLEngine {
	return &HTMLEngine{}
}

// Render produces the markup for one formula.
func (e *HTMLEngine) Render(formula string, display bool) (string, error) {
	if err := validate(formula); err != nil {
		return "", &RenderError{Formula: formula, Err: err}
	}

	var b strings.Builder
	if display {
		b.WriteString(`<code class="language-math display">`)
	} else {
		b.WriteString(`<code class="language-math is-loading">`)
	}
	b.WriteString(html.EscapeString(formula))
	b.WriteString(`</code>`)
	return b.String(), nil
}

// Flush implements Engine. HTMLEngine has no batch to commit.
func (e *HTMLEngine) Flush() error {
	return nil
}

// validate applies the shallow LaTeX checks the engine can do without a full
// parser: the formula must be non-empty, single-line, and brace-balanced.
func validate(formula string) error {
	if strings.TrimSpace(formula) == "" {
		return ErrEmptyFormula
	}
	if strings.ContainsRune(formula, '\n') {
		return ErrMultilineFormula
	}

	depth := 0
	escaped := false
	for _, r := range formula {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return ErrUnbalancedBraces
			}
		}
	}
	if depth != 0 {
		return ErrUnbalancedBraces
	}
	return nil
}
