package matcher

import "testing"

func TestFindSingleSpan(t *testing.T) {
	matches := Find("$ E = mc^2 $")
	if len(matches) != 1 {
		t.Fatalf("Find() returned %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.Formula != "E = mc^2" {
		t.Errorf("Formula = %q, want %q", m.Formula, "E = mc^2")
	}
	if m.Raw != "$ E = mc^2 $" {
		t.Errorf("Raw = %q, want full span", m.Raw)
	}
	if m.Start != 0 || m.End != 12 {
		t.Errorf("span = [%d,%d), want [0,12)", m.Start, m.End)
	}
}

func TestFindRejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no dollars", "plain text"},
		{"no padding", "$formula$"},
		{"left padding only", "$ formula$"},
		{"right padding only", "$formula $"},
		{"block delimiters", "$$formula$$"},
		{"block with padding", "$$ formula $$"},
		{"money amounts", "The price is $5 and $10."},
		{"newline in body", "$ a\nb $"},
		{"newline as padding", "$\nformula\n$"},
		{"lone dollar", "just one $ here"},
		{"empty interior", "$   $"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.text); len(got) != 0 {
				t.Errorf("Find(%q) = %v, want no matches", tt.text, got)
			}
			if Contains(tt.text) {
				t.Errorf("Contains(%q) = true, want false", tt.text)
			}
		})
	}
}

func TestFindTwoSpansOneLine(t *testing.T) {
	text := "$ a $ and $ b $"
	matches := Find(text)
	if len(matches) != 2 {
		t.Fatalf("Find(%q) returned %d matches, want 2", text, len(matches))
	}

	if matches[0].Formula != "a" || matches[1].Formula != "b" {
		t.Errorf("formulas = %q, %q; want a, b", matches[0].Formula, matches[1].Formula)
	}
	if matches[0].Start != 0 || matches[0].End != 5 {
		t.Errorf("first span = [%d,%d), want [0,5)", matches[0].Start, matches[0].End)
	}
	if matches[1].Start != 10 || matches[1].End != 15 {
		t.Errorf("second span = [%d,%d), want [10,15)", matches[1].Start, matches[1].End)
	}
	if matches[0].End > matches[1].Start {
		t.Error("spans overlap")
	}
}

func TestFindLazyBodyStopsAtFirstCloser(t *testing.T) {
	// A greedy body would swallow through to the last dollar.
	matches := Find("x $ a $ y $ b $ z")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Raw != "$ a $" {
		t.Errorf("first Raw = %q, want %q", matches[0].Raw, "$ a $")
	}
}

func TestFindTabPadding(t *testing.T) {
	matches := Find("$\t\\alpha\t$")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Formula != `\alpha` {
		t.Errorf("Formula = %q, want %q", matches[0].Formula, `\alpha`)
	}
}

func TestFindInteriorSpacesKept(t *testing.T) {
	matches := Find("$  a + b  $")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Formula != "a + b" {
		t.Errorf("Formula = %q, want %q (padding trimmed, interior kept)", matches[0].Formula, "a + b")
	}
}

func TestFindNoNewlineInFormula(t *testing.T) {
	texts := []string{
		"$ a $\n$ b $",
		"before\n$ mid $\nafter",
		"$ x\t$ plus $ y $",
	}
	for _, text := range texts {
		for _, m := range Find(text) {
			for _, r := range m.Formula {
				if r == '\n' {
					t.Errorf("Find(%q) produced formula %q containing newline", text, m.Formula)
				}
			}
		}
	}
}

func TestFindUnicodeOffsets(t *testing.T) {
	text := "héllo $ α+β $ wörld"
	matches := Find(text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.Formula != "α+β" {
		t.Errorf("Formula = %q, want %q", m.Formula, "α+β")
	}
	// Offsets must be byte offsets so slicing the original text round-trips.
	if text[m.Start:m.End] != m.Raw {
		t.Errorf("text[%d:%d] = %q, want %q", m.Start, m.End, text[m.Start:m.End], m.Raw)
	}
}

func TestFindRepeatedScansIndependent(t *testing.T) {
	// Consecutive scans over the same and then a different string must not
	// miss matches; every call starts from position zero.
	first := "$ a $"
	second := "tail $ b $"

	if got := Find(first); len(got) != 1 {
		t.Fatalf("first scan: got %d matches, want 1", len(got))
	}
	if got := Find(first); len(got) != 1 {
		t.Errorf("repeat scan over same text: got %d matches, want 1", len(got))
	}
	if got := Find(second); len(got) != 1 || got[0].Formula != "b" {
		t.Errorf("scan over different text: got %v, want one match for b", got)
	}
}

func TestContainsAgreesWithFind(t *testing.T) {
	texts := []string{
		"$ a $",
		"$a$",
		"no math",
		"$$ x $$",
		"mixed $ ok $ and $broken$",
	}
	for _, text := range texts {
		if got, want := Contains(text), len(Find(text)) > 0; got != want {
			t.Errorf("Contains(%q) = %v, Find disagrees (%v)", text, got, want)
		}
	}
}
