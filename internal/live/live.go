// Package live recomputes math replace-decorations over the visible portion
// of an editable text buffer.
//
// The host view triggers a rebuild on every content, viewport, or selection
// change; each rebuild produces the complete decoration set from current
// inputs. Nothing is carried between events, so a stale rebuild can never be
// in flight. Viewport windowing keeps the per-event cost bounded, which is
// why there is no incremental diffing.
package live

import "github.com/dshills/mathlens/internal/typeset"

// Span is a half-open [From, To) range of absolute buffer offsets.
type Span struct {
	From int
	To   int
}

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool {
	return s.From >= s.To
}

// View is the editable-view snapshot a rebuild reads. All three inputs are
// read-only and describe the view at the moment of the triggering event.
type View interface {
	// VisibleRanges returns the on-screen buffer ranges, ordered and
	// non-overlapping.
	VisibleRanges() []Span

	// Selections returns the current selection ranges. A caret is an empty
	// span at the cursor position.
	Selections() []Span

	// Slice returns the buffer text for [from, to).
	Slice(from, to int) string
}

// Classifier reports buffer ranges the host already recognizes as valid
// math. Views without structural classification run without one; the scanner
// then occasionally double-matches next to native math, an accepted
// approximation.
type Classifier interface {
	MathRanges(from, to int) []Span
}

// Decoration instructs the view to visually replace [From, To) with the
// typeset unit, leaving the buffer content itself alone.
type Decoration struct {
	From int
	To   int
	Unit typeset.Unit
}

// Eq reports whether two decorations cover the same span with an equivalent
// unit, letting the view skip re-rendering an unchanged widget.
func (d Decoration) Eq(other Decoration) bool {
	return d.From == other.From && d.To == other.To && d.Unit.Eq(other.Unit)
}

// Text returns what the decoration displays: the typeset formula, or the
// reconstructed literal source when rendering failed.
func (d Decoration) Text() string {
	if d.Unit.Failed {
		return d.Unit.Fallback()
	}
	return d.Unit.Formula
}

// Equal reports whether two decoration sets are equivalent element-wise.
func Equal(a, b []Decoration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}
