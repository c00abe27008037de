package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/mathlens/internal/live"
	"github.com/dshills/mathlens/internal/live/textview"
)

// segKind classifies a drawn segment.
type segKind uint8

const (
	segText segKind = iota
	segMath
	segFallback
)

// segment is a run of displayed text with one style.
type segment struct {
	text string
	kind segKind
}

// lineSegments splits one line into plain-text and decoration segments, in
// display order. Decorations never span lines (a formula cannot contain a
// newline), so clipping to the line span is enough.
func lineSegments(v *textview.View, decs []live.Decoration, line int) []segment {
	span := v.LineSpan(line)
	pos := span.From

	var segs []segment
	for _, d := range decs {
		if d.To <= span.From || d.From >= span.To {
			continue
		}
		if d.From > pos {
			segs = append(segs, segment{text: v.Slice(pos, d.From)})
		}
		kind := segMath
		if d.Unit.Failed {
			kind = segFallback
		}
		segs = append(segs, segment{text: d.Text(), kind: kind})
		pos = d.To
	}
	if pos < span.To {
		segs = append(segs, segment{text: v.Slice(pos, span.To)})
	}
	return segs
}

// displayCol converts a buffer offset into the screen column it occupies on
// its line, accounting for decorations that display different text than
// they cover. The caret cannot sit inside a decoration: the inclusive
// selection rule suppresses any span the caret touches.
func displayCol(v *textview.View, decs []live.Decoration, offset int) int {
	span := v.LineSpan(v.LineAt(offset))
	pos := span.From
	col := 0

	for _, d := range decs {
		if d.To <= span.From || d.From >= span.To {
			continue
		}
		if offset <= d.From {
			break
		}
		col += uniseg.StringWidth(v.Slice(pos, d.From))
		col += uniseg.StringWidth(d.Text())
		pos = d.To
	}
	if offset > pos {
		col += uniseg.StringWidth(v.Slice(pos, offset))
	}
	return col
}

// drawString paints text at (x, y) one grapheme cluster at a time and
// returns the column after the last cell.
func drawString(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += uniseg.StringWidth(g.Str())
	}
	return x
}
