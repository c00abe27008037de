package live

import (
	"strings"

	"github.com/dshills/mathlens/internal/matcher"
	"github.com/dshills/mathlens/internal/typeset"
)

// Scanner rebuilds the decoration set for a view snapshot.
type Scanner struct {
	ts       *typeset.Typesetter
	classify Classifier
}

// NewScanner creates a scanner. classify may be nil when the host has no
// structural classification of native math.
func NewScanner(ts *typeset.Typesetter, classify Classifier) *Scanner {
	return &Scanner{ts: ts, classify: classify}
}

// Rebuild computes the complete decoration set for the snapshot, in strictly
// ascending span order. Visible ranges are processed in their given order
// and matches within a range are found left to right, so the order falls out
// without sorting. The typesetter is flushed once when the pass produced any
// decorations.
//
// Two suppression rules veto a match:
//
//   - Native math, half-open: the native range must actually intrude into
//     the match span.
//   - Selection, inclusive: a cursor sitting exactly on a delimiter counts
//     as inside, so the raw source stays visible while editing a formula's
//     edge, not just its interior.
func (s *Scanner) Rebuild(v View) []Decoration {
	selections := v.Selections()

	var decs []Decoration
	for _, vr := range v.VisibleRanges() {
		if vr.Empty() {
			continue
		}
		text := v.Slice(vr.From, vr.To)
		if !strings.ContainsRune(text, '$') {
			continue
		}

		var native []Span
		if s.classify != nil {
			native = s.classify.MathRanges(vr.From, vr.To)
		}

		for _, m := range matcher.Find(text) {
			from := vr.From + m.Start
			to := vr.From + m.End
			if overlapsNative(native, from, to) {
				continue
			}
			if overlapsSelection(selections, from, to) {
				continue
			}
			decs = append(decs, Decoration{
				From: from,
				To:   to,
				Unit: s.ts.Render(m.Formula, false),
			})
		}
	}

	if len(decs) > 0 {
		_ = s.ts.Flush()
	}
	return decs
}

// overlapsNative uses the half-open test: a native range touching only the
// match boundary does not suppress it.
func overlapsNative(native []Span, from, to int) bool {
	for _, n := range native {
		if n.From < to && n.To > from {
			return true
		}
	}
	return false
}

// overlapsSelection uses the inclusive test: boundary contact counts.
func overlapsSelection(selections []Span, from, to int) bool {
	for _, sel := range selections {
		if sel.From <= to && sel.To >= from {
			return true
		}
	}
	return false
}
