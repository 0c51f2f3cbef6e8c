package fonts

import (
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestHeuristicAdvance(t *testing.T) {
	cases := []struct {
		r    rune
		want float64
	}{
		{' ', 0.28},
		{'A', 0.62},
		{'Z', 0.62},
		{'a', 0.52},
		{'z', 0.52},
		{'0', 0.55},
		{'9', 0.55},
		{'.', 0.5},
		{'é', 0.5},
		{'₹', 0.5},
	}
	var m Heuristic
	for _, tc := range cases {
		if got := m.Advance(tc.r); !almostEqual(got, tc.want) {
			t.Fatalf("Advance(%q) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestMeasureScalesWithSize(t *testing.T) {
	var m Heuristic
	// "Ab 1" = 0.62 + 0.52 + 0.28 + 0.55
	want := (0.62 + 0.52 + 0.28 + 0.55) * 11
	if got := Measure(m, "Ab 1", 11); !almostEqual(got, want) {
		t.Fatalf("Measure = %v, want %v", got, want)
	}
	if got := Measure(m, "", 12); got != 0 {
		t.Fatalf("empty text width = %v", got)
	}
	if Measure(m, "HEADING", 12) <= Measure(m, "HEADING", 11) {
		t.Fatalf("larger size must measure wider")
	}
}

func TestSFNTAdvance(t *testing.T) {
	m, err := NewGoRegular()
	if err != nil {
		t.Fatalf("NewGoRegular: %v", err)
	}
	wide, narrow := m.Advance('W'), m.Advance('i')
	if wide <= narrow {
		t.Fatalf("expected W (%v) wider than i (%v)", wide, narrow)
	}
	if wide <= 0 || wide > 1.5 {
		t.Fatalf("W advance out of range: %v", wide)
	}
	// Outside the precomputed table.
	if got := m.Advance('—'); got <= 0 {
		t.Fatalf("em dash advance = %v", got)
	}
	// Unknown glyphs fall back to a positive width.
	if got := m.Advance('\U0001F600'); got <= 0 {
		t.Fatalf("fallback advance = %v", got)
	}
}

func TestSFNTRejectsBadData(t *testing.T) {
	if _, err := NewSFNT(nil); err == nil {
		t.Fatalf("expected error for empty data")
	}
	if _, err := NewSFNT([]byte("not a font")); err == nil {
		t.Fatalf("expected error for garbage data")
	}
}

func TestShapedAdvance(t *testing.T) {
	m, err := NewShaped(gobold.TTF)
	if err != nil {
		t.Fatalf("NewShaped: %v", err)
	}
	if m.Advance('M') <= m.Advance('l') {
		t.Fatalf("expected M wider than l")
	}
	if got := m.Advance('Ж'); got <= 0 {
		t.Fatalf("cyrillic advance = %v", got)
	}
}

func TestModelsAgreeRoughly(t *testing.T) {
	sf, err := NewSFNT(goregular.TTF)
	if err != nil {
		t.Fatalf("NewSFNT: %v", err)
	}
	sh, err := NewShaped(goregular.TTF)
	if err != nil {
		t.Fatalf("NewShaped: %v", err)
	}
	text := "Notice under Section 138"
	a, b := Measure(sf, text, 11), Measure(sh, text, 11)
	if math.Abs(a-b) > 1 {
		t.Fatalf("sfnt %v and shaped %v disagree for the same font", a, b)
	}
}

func TestNamed(t *testing.T) {
	for _, name := range []string{"", ModelHeuristic, ModelSFNT, ModelShaped} {
		m, err := Named(name)
		if err != nil {
			t.Fatalf("Named(%q): %v", name, err)
		}
		if w := m.Advance('n'); w <= 0 || w > 1 {
			t.Fatalf("Named(%q) advance of n = %v", name, w)
		}
	}
	if _, err := Named("metric"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestFingerprint(t *testing.T) {
	sfntModel, err := NewSFNT(goregular.TTF)
	if err != nil {
		t.Fatalf("sfnt: %v", err)
	}
	again, _ := NewGoRegular()
	boldModel, err := NewSFNT(gobold.TTF)
	if err != nil {
		t.Fatalf("sfnt bold: %v", err)
	}
	shaped, err := NewShaped(goregular.TTF)
	if err != nil {
		t.Fatalf("shaped: %v", err)
	}
	if (Heuristic{}).Fingerprint() != ModelHeuristic {
		t.Fatalf("heuristic fingerprint %q", Heuristic{}.Fingerprint())
	}
	if sfntModel.Fingerprint() != again.Fingerprint() {
		t.Fatalf("same font data gave %q and %q", sfntModel.Fingerprint(), again.Fingerprint())
	}
	seen := map[string]bool{}
	for _, fp := range []string{Heuristic{}.Fingerprint(), sfntModel.Fingerprint(), boldModel.Fingerprint(), shaped.Fingerprint()} {
		if seen[fp] {
			t.Fatalf("duplicate fingerprint %q", fp)
		}
		seen[fp] = true
	}
}
