// Package matcher locates tolerant inline-math spans in plain text.
//
// A tolerant span is a dollar-delimited formula with at least one horizontal
// whitespace character immediately inside each delimiter, e.g. "$ E = mc^2 $".
// Strict Markdown math parsers refuse this form, so it survives into rendered
// output as literal text; the scanners in this module find those survivors.
package matcher

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// The delimiter policy, piece by piece:
//
//	(?<!\$)\$   opening $ not preceded by another $ (don't grab the second
//	            half of a $$ block opener)
//	[ \t]+      interior padding, horizontal whitespace only; \s would
//	            swallow newlines and an inline formula cannot span lines
//	[^$\n \t]   the formula body must open with a real character, so a
//	            whitespace-only interior never yields an empty formula
//	[^$\n]*?    the rest of the body, lazy so it stops at the first valid
//	            closing sequence instead of eating the next formula
//	[ \t]+      mirrored right padding
//	\$(?!\$)    closing $ not followed by another $ (don't collide with a
//	            $$ block opener that starts right after)
//
// The look-arounds are why this uses regexp2 rather than the standard
// library's RE2 engine.
var pattern = regexp2.MustCompile(`(?<!\$)\$[ \t]+([^$\n \t][^$\n]*?)[ \t]+\$(?!\$)`, regexp2.None)

// Match is one tolerant span found in a text scan.
type Match struct {
	// Start and End are byte offsets into the scanned text, half-open,
	// spanning both delimiters and the interior padding.
	Start int
	End   int

	// Raw is the full matched span, delimiters included.
	Raw string

	// Formula is the interior text with the padding trimmed off.
	// Never empty: the pattern requires at least one interior character.
	Formula string
}

// Find returns every non-overlapping tolerant span in text, in ascending
// order. Each call scans from the beginning; no state is carried between
// calls.
func Find(text string) []Match {
	if !strings.ContainsRune(text, '$') {
		return nil
	}

	runes := []rune(text)
	offsets := runeOffsets(text, len(runes))

	var out []Match
	m, err := pattern.FindRunesMatch(runes)
	for err == nil && m != nil {
		start := offsets[m.Index]
		end := offsets[m.Index+m.Length]
		body := m.GroupByNumber(1).String()
		out = append(out, Match{
			Start:   start,
			End:     end,
			Raw:     text[start:end],
			Formula: strings.Trim(body, " \t"),
		})
		m, err = pattern.FindNextMatch(m)
	}
	return out
}

// Contains reports whether text holds at least one tolerant span, without
// materializing matches.
func Contains(text string) bool {
	if !strings.ContainsRune(text, '$') {
		return false
	}
	ok, err := pattern.MatchString(text)
	return err == nil && ok
}

// runeOffsets maps rune indices (which the regexp engine reports) back to
// byte offsets in s. The extra final entry makes end offsets addressable.
func runeOffsets(s string, runeLen int) []int {
	offsets := make([]int, 0, runeLen+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
