// Package typeset adapts a math typesetting engine for the span scanners.
//
// Scanners hand every formula they accept to a Typesetter and receive a Unit
// back, success or not; a render failure becomes a fallback Unit carrying the
// literal source text, so broken formulas stay visible instead of vanishing.
// Engines that batch work (MathJax-style) are committed with a single Flush
// call per scan pass, never per formula.
package typeset

import (
	"errors"
	"fmt"
)

// Validation errors produced by engines.
var (
	// ErrEmptyFormula indicates a formula with no content after trimming.
	ErrEmptyFormula = errors.New("empty formula")

	// ErrMultilineFormula indicates a formula containing a line break.
	ErrMultilineFormula = errors.New("formula spans multiple lines")

	// ErrUnbalancedBraces indicates unmatched {} grouping in a formula.
	ErrUnbalancedBraces = errors.New("unbalanced braces")
)

// RenderError wraps an engine failure with the offending formula.
type RenderError struct {
	Formula string
	Err     error
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("render %q: %v", e.Formula, e.Err)
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Engine is the typesetting backend. Render produces markup for one formula;
// display selects block layout (unused by the inline scanners, which always
// pass false). Flush commits any batched work and must be called once per
// scan pass, after all Render calls for that pass.
type Engine interface {
	Render(formula string, display bool) (string, error)
	Flush() error
}

// Unit is the outcome of typesetting one formula. A failed Unit carries no
// markup; callers substitute the original literal text instead.
type Unit struct {
	// Formula is the trimmed source formula.
	Formula string

	// Markup is the rendered output. Empty when Failed.
	Markup string

	// Failed reports that the engine rejected the formula.
	Failed bool
}

// Eq reports whether two units render the same content. Units compare by
// formula text, letting view layers skip re-rendering identical widgets.
func (u Unit) Eq(other Unit) bool {
	return u.Formula == other.Formula && u.Failed == other.Failed
}

// Fallback reconstructs the delimited source form for display when rendering
// failed.
func (u Unit) Fallback() string {
	return "$ " + u.Formula + " $"
}

// Typesetter wraps an Engine with per-formula failure containment.
type Typesetter struct {
	engine Engine
}

// New creates a Typesetter over the given engine.
func New(engine Engine) *Typesetter {
	return &Typesetter{engine: engine}
}

// Render typesets one formula. An engine failure is absorbed into a failed
// Unit; it never propagates and never affects other formulas in the pass.
func (t *Typesetter) Render(formula string, display bool) Unit {
	markup, err := t.engine.Render(formula, display)
	if err != nil {
		return Unit{Formula: formula, Failed: true}
	}
	return Unit{Formula: formula, Markup: markup}
}

// Flush commits the current batch. Callers invoke this at most once per scan
// pass, and only when the pass produced output.
func (t *Typesetter) Flush() error {
	return t.engine.Flush()
}
