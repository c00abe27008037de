// Package tui is a read-only terminal preview of a Markdown document with
// live math decorations.
//
// Tolerant math spans are shown as styled typeset text; moving the cursor
// onto a span suppresses its decoration and reveals the raw source, exactly
// as an editor surface would. The preview rebuilds its decoration set on
// every cursor, scroll, and resize event.
package tui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathlens/internal/live"
	"github.com/dshills/mathlens/internal/live/textview"
	"github.com/dshills/mathlens/internal/typeset"
)

var (
	styleText     = tcell.StyleDefault
	styleMath     = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleFallback = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Preview is the terminal preview session.
type Preview struct {
	name   string
	screen tcell.Screen
	view   *textview.View
	mgr    *live.Manager
	caret  int
}

// New creates a preview of the given document text.
func New(name, text string, ts *typeset.Typesetter) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Preview{
		name:   name,
		screen: screen,
		view:   textview.New(text, 24),
		mgr:    live.NewManager(live.NewScanner(ts, nil)),
	}, nil
}

// Run enters the event loop and blocks until the user quits.
func (p *Preview) Run() error {
	if err := p.screen.Init(); err != nil {
		return err
	}
	defer p.screen.Fini()

	_, height := p.screen.Size()
	p.view.SetHeight(contentHeight(height))
	p.refresh()

	for {
		switch ev := p.screen.PollEvent().(type) {
		case *tcell.EventResize:
			_, height := ev.Size()
			p.view.SetHeight(contentHeight(height))
			p.screen.Sync()
			p.refresh()
		case *tcell.EventKey:
			if p.handleKey(ev) {
				return nil
			}
			p.refresh()
		}
	}
}

// contentHeight reserves the bottom row for the status line.
func contentHeight(screenHeight int) int {
	if screenHeight <= 1 {
		return 1
	}
	return screenHeight - 1
}

// handleKey applies one key event and reports whether to quit.
func (p *Preview) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	case tcell.KeyLeft:
		p.caret = prevRune(p.view.Text(), p.caret)
	case tcell.KeyRight:
		p.caret = nextRune(p.view.Text(), p.caret)
	case tcell.KeyUp:
		p.moveLine(-1)
	case tcell.KeyDown:
		p.moveLine(1)
	case tcell.KeyHome:
		p.caret = p.view.LineSpan(p.view.LineAt(p.caret)).From
	case tcell.KeyEnd:
		p.caret = p.view.LineSpan(p.view.LineAt(p.caret)).To
	case tcell.KeyPgUp:
		p.view.Scroll(-p.view.Height())
		p.caret = p.view.LineSpan(p.view.Top()).From
	case tcell.KeyPgDn:
		p.view.Scroll(p.view.Height())
		p.caret = p.view.LineSpan(p.view.Top()).From
	}
	p.followCaret()
	return false
}

// moveLine moves the caret to the adjacent line, keeping the byte column
// where the line allows it.
func (p *Preview) moveLine(delta int) {
	line := p.view.LineAt(p.caret)
	col := p.caret - p.view.LineSpan(line).From

	next := line + delta
	if next < 0 || next >= p.view.LineCount() {
		return
	}
	span := p.view.LineSpan(next)
	if target := span.From + col; target < span.To {
		p.caret = target
	} else {
		p.caret = span.To
	}
}

// followCaret scrolls the viewport so the caret line stays visible.
func (p *Preview) followCaret() {
	line := p.view.LineAt(p.caret)
	if line < p.view.Top() {
		p.view.ScrollTo(line)
	} else if line >= p.view.Top()+p.view.Height() {
		p.view.ScrollTo(line - p.view.Height() + 1)
	}
}

// refresh rebuilds decorations from the current snapshot and redraws.
func (p *Preview) refresh() {
	p.view.SetCaret(p.caret)
	decs, _ := p.mgr.Update(p.view)
	p.draw(decs)
}

// draw paints the visible lines, the caret, and the status line.
func (p *Preview) draw(decs []live.Decoration) {
	p.screen.Clear()

	row := 0
	for line := p.view.Top(); line < p.view.Top()+p.view.Height() && line < p.view.LineCount(); line++ {
		x := 0
		for _, seg := range lineSegments(p.view, decs, line) {
			style := styleText
			switch seg.kind {
			case segMath:
				style = styleMath
			case segFallback:
				style = styleFallback
			}
			x = drawString(p.screen, x, row, seg.text, style)
		}
		row++
	}

	caretLine := p.view.LineAt(p.caret)
	if caretLine >= p.view.Top() && caretLine < p.view.Top()+p.view.Height() {
		p.screen.ShowCursor(displayCol(p.view, decs, p.caret), caretLine-p.view.Top())
	} else {
		p.screen.HideCursor()
	}

	p.drawStatus(len(decs))
	p.screen.Show()
}

// drawStatus paints the bottom status line.
func (p *Preview) drawStatus(mathCount int) {
	width, height := p.screen.Size()
	if height < 2 {
		return
	}
	line := p.view.LineAt(p.caret)
	col := p.caret - p.view.LineSpan(line).From
	status := fmt.Sprintf(" %s  %d:%d  math:%d  (q to quit)", p.name, line+1, col+1, mathCount)

	x := drawString(p.screen, 0, height-1, status, styleStatus)
	for ; x < width; x++ {
		p.screen.SetContent(x, height-1, ' ', nil, styleStatus)
	}
}

// prevRune steps one rune left, clamped at 0.
func prevRune(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(s[:offset])
	return offset - size
}

// nextRune steps one rune right, clamped at len(s).
func nextRune(s string, offset int) int {
	if offset >= len(s) {
		return len(s)
	}
	_, size := utf8.DecodeRuneInString(s[offset:])
	return offset + size
}
