package live

import (
	"testing"

	"github.com/dshills/mathlens/internal/typeset"
)

func newTestManager() (*Manager, *countingEngine) {
	engine := &countingEngine{}
	return NewManager(NewScanner(typeset.New(engine), nil)), engine
}

func TestManagerUpdateReportsChange(t *testing.T) {
	m, _ := newTestManager()

	decs, changed := m.Update(fullView("$ a $"))
	if !changed {
		t.Fatal("first update should report change")
	}
	if len(decs) != 1 {
		t.Fatalf("got %d decorations, want 1", len(decs))
	}
}

func TestManagerUpdateSkipsEquivalent(t *testing.T) {
	m, _ := newTestManager()
	view := fullView("$ a $ text")

	m.Update(view)
	_, changed := m.Update(view)
	if changed {
		t.Error("identical snapshot should not report change")
	}

	// A selection landing on the span changes the set (suppression).
	_, changed = m.Update(fullView("$ a $ text", Span{From: 3, To: 3}))
	if !changed {
		t.Error("suppressed span should report change")
	}

	// Selection moving far away restores the decoration.
	decs, changed := m.Update(fullView("$ a $ text", Span{From: 9, To: 9}))
	if !changed {
		t.Error("restored span should report change")
	}
	if len(decs) != 1 {
		t.Errorf("got %d decorations after restore, want 1", len(decs))
	}
}

func TestManagerAt(t *testing.T) {
	m, _ := newTestManager()
	m.Update(fullView("ab$ f $cd"))

	if _, ok := m.At(1); ok {
		t.Error("At(1) should miss, offset before span")
	}
	d, ok := m.At(3)
	if !ok {
		t.Fatal("At(3) should hit the decoration")
	}
	if d.Unit.Formula != "f" {
		t.Errorf("formula = %q, want f", d.Unit.Formula)
	}
	if _, ok := m.At(7); ok {
		t.Error("At(7) should miss, span end is exclusive")
	}
}
