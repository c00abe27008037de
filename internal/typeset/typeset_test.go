package typeset

import (
	"errors"
	"strings"
	"testing"
)

// fakeEngine records calls and fails for formulas in the reject set.
type fakeEngine struct {
	renders int
	flushes int
	reject  map[string]bool
}

func (f *fakeEngine) Render(formula string, display bool) (string, error) {
	f.renders++
	if f.reject[formula] {
		return "", &RenderError{Formula: formula, Err: ErrUnbalancedBraces}
	}
	return "<unit>" + formula + "</unit>", nil
}

func (f *fakeEngine) Flush() error {
	f.flushes++
	return nil
}

func TestTypesetterRenderSuccess(t *testing.T) {
	engine := &fakeEngine{}
	ts := New(engine)

	unit := ts.Render("x^2", false)
	if unit.Failed {
		t.Fatal("unit unexpectedly failed")
	}
	if unit.Formula != "x^2" {
		t.Errorf("Formula = %q, want x^2", unit.Formula)
	}
	if unit.Markup != "<unit>x^2</unit>" {
		t.Errorf("Markup = %q", unit.Markup)
	}
}

func TestTypesetterRenderFailureContained(t *testing.T) {
	engine := &fakeEngine{reject: map[string]bool{"bad": true}}
	ts := New(engine)

	failed := ts.Render("bad", false)
	if !failed.Failed {
		t.Fatal("expected failed unit")
	}
	if failed.Markup != "" {
		t.Errorf("failed unit carries markup %q", failed.Markup)
	}
	if failed.Fallback() != "$ bad $" {
		t.Errorf("Fallback() = %q, want %q", failed.Fallback(), "$ bad $")
	}

	// A failure must not poison later renders in the same batch.
	ok := ts.Render("good", false)
	if ok.Failed {
		t.Error("render after failure unexpectedly failed")
	}
}

func TestTypesetterFlushForwarded(t *testing.T) {
	engine := &fakeEngine{}
	ts := New(engine)

	ts.Render("a", false)
	ts.Render("b", false)
	if err := ts.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if engine.flushes != 1 {
		t.Errorf("engine flushed %d times, want 1", engine.flushes)
	}
}

func TestUnitEq(t *testing.T) {
	a := Unit{Formula: "x", Markup: "<m>x</m>"}
	b := Unit{Formula: "x", Markup: "<different>x</different>"}
	c := Unit{Formula: "y"}
	d := Unit{Formula: "x", Failed: true}

	if !a.Eq(b) {
		t.Error("units with same formula should be equal")
	}
	if a.Eq(c) {
		t.Error("units with different formulas should not be equal")
	}
	if a.Eq(d) {
		t.Error("failed unit should not equal rendered unit")
	}
}

func TestHTMLEngineRender(t *testing.T) {
	engine := NewHTMLEngine()

	markup, err := engine.Render("E = mc^2", false)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(markup, `class="language-math`) {
		t.Errorf("markup missing math class: %q", markup)
	}
	if !strings.Contains(markup, "E = mc^2") {
		t.Errorf("markup missing formula: %q", markup)
	}
}

func TestHTMLEngineEscapes(t *testing.T) {
	engine := NewHTMLEngine()

	markup, err := engine.Render("a < b", false)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(markup, "a < b") {
		t.Errorf("formula not escaped: %q", markup)
	}
	if !strings.Contains(markup, "a &lt; b") {
		t.Errorf("expected escaped formula in %q", markup)
	}
}

func TestHTMLEngineValidation(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		wantErr error
	}{
		{"empty", "", ErrEmptyFormula},
		{"whitespace only", "  \t ", ErrEmptyFormula},
		{"newline", "a\nb", ErrMultilineFormula},
		{"unclosed brace", `\frac{1`, ErrUnbalancedBraces},
		{"stray close brace", "x}", ErrUnbalancedBraces},
		{"escaped braces ok", `\{x\}`, nil},
		{"balanced", `\frac{1}{2}`, nil},
	}

	engine := NewHTMLEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Render(tt.formula, false)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Render(%q) error: %v", tt.formula, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render(%q) error = %v, want %v", tt.formula, err, tt.wantErr)
			}
			var re *RenderError
			if !errors.As(err, &re) {
				t.Errorf("error %v is not a RenderError", err)
			} else if re.Formula != tt.formula {
				t.Errorf("RenderError.Formula = %q, want %q", re.Formula, tt.formula)
			}
		})
	}
}
