// Package textview provides an in-memory live.View over a line-addressed
// text buffer with viewport windowing.
//
// The view is written for the single-threaded event model of the live
// scanner: the owner mutates it and triggers rebuilds from one goroutine, so
// there is no internal locking.
package textview

import (
	"strings"

	"github.com/dshills/mathlens/internal/live"
)

// View is a text buffer plus viewport and selection state.
type View struct {
	text   string
	starts []int // byte offset of each line start
	top    int   // first visible line
	height int   // visible line count

	selections []live.Span
}

// New creates a view over text with a viewport of the given height in lines.
func New(text string, height int) *View {
	if height < 1 {
		height = 1
	}
	v := &View{height: height}
	v.SetText(text)
	return v
}

// SetText replaces the buffer content. The viewport is clamped and
// selections collapse to a caret at the start; the host rebuilds decorations
// after any content change, so stale spans never survive.
func (v *View) SetText(text string) {
	v.text = text
	v.starts = lineStarts(text)
	if v.top > v.maxTop() {
		v.top = v.maxTop()
	}
	v.selections = []live.Span{{From: 0, To: 0}}
}

// Text returns the full buffer content.
func (v *View) Text() string {
	return v.text
}

// LineCount returns the number of lines in the buffer.
func (v *View) LineCount() int {
	return len(v.starts)
}

// Top returns the first visible line.
func (v *View) Top() int {
	return v.top
}

// Height returns the viewport height in lines.
func (v *View) Height() int {
	return v.height
}

// SetHeight resizes the viewport.
func (v *View) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	v.height = height
	if v.top > v.maxTop() {
		v.top = v.maxTop()
	}
}

// ScrollTo positions the viewport with the given line on top, clamped to the
// buffer.
func (v *View) ScrollTo(line int) {
	if line < 0 {
		line = 0
	}
	if max := v.maxTop(); line > max {
		line = max
	}
	v.top = line
}

// Scroll moves the viewport by delta lines.
func (v *View) Scroll(delta int) {
	v.ScrollTo(v.top + delta)
}

// SetCaret collapses the selection to a caret at the given offset.
func (v *View) SetCaret(offset int) {
	offset = v.clamp(offset)
	v.selections = []live.Span{{From: offset, To: offset}}
}

// Select sets a single selection range.
func (v *View) Select(from, to int) {
	v.selections = []live.Span{{From: v.clamp(from), To: v.clamp(to)}}
}

// Selections implements live.View.
func (v *View) Selections() []live.Span {
	return v.selections
}

// VisibleRanges implements live.View: one half-open range covering the
// on-screen lines.
func (v *View) VisibleRanges() []live.Span {
	if v.text == "" {
		return nil
	}
	from := v.starts[v.top]
	to := len(v.text)
	if end := v.top + v.height; end < len(v.starts) {
		to = v.starts[end]
	}
	if from >= to {
		return nil
	}
	return []live.Span{{From: from, To: to}}
}

// Slice implements live.View.
func (v *View) Slice(from, to int) string {
	from = v.clamp(from)
	to = v.clamp(to)
	if from >= to {
		return ""
	}
	return v.text[from:to]
}

// LineSpan returns the [from, to) byte range of one line, excluding its
// trailing newline.
func (v *View) LineSpan(line int) live.Span {
	if line < 0 || line >= len(v.starts) {
		return live.Span{}
	}
	from := v.starts[line]
	to := len(v.text)
	if line+1 < len(v.starts) {
		to = v.starts[line+1] - 1
	}
	return live.Span{From: from, To: to}
}

// Line returns the text of one line without its trailing newline.
func (v *View) Line(line int) string {
	s := v.LineSpan(line)
	return v.text[s.From:s.To]
}

// LineAt returns the line number containing the given byte offset.
func (v *View) LineAt(offset int) int {
	offset = v.clamp(offset)
	for i := len(v.starts) - 1; i >= 0; i-- {
		if v.starts[i] <= offset {
			return i
		}
	}
	return 0
}

func (v *View) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(v.text) {
		return len(v.text)
	}
	return offset
}

func (v *View) maxTop() int {
	max := len(v.starts) - v.height
	if max < 0 {
		return 0
	}
	return max
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); {
		next := strings.IndexByte(text[i:], '\n')
		if next < 0 {
			break
		}
		i += next + 1
		starts = append(starts, i)
	}
	return starts
}
