package layout

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/wudi/noticepdf/fonts"
)

func TestGeometryDerivedValues(t *testing.T) {
	g := DefaultGeometry
	if got := g.LinesPerPage(); got != 42 {
		t.Fatalf("LinesPerPage = %d, want 42", got)
	}
	if got := g.MaxLineWidth(); got != 481 {
		t.Fatalf("MaxLineWidth = %v, want 481", got)
	}
	if got := g.BlankAdvance(); got != 12 {
		t.Fatalf("BlankAdvance = %v, want 12", got)
	}
	tiny := Geometry{ContentTop: 10, ContentBottom: 5, LineHeight: 15}
	if got := tiny.LinesPerPage(); got != 1 {
		t.Fatalf("tiny LinesPerPage = %d, want 1", got)
	}
}

func TestIsSectionHeading(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"1. TRANSACTION BACKGROUND", true},
		{"12.  Demand", true},
		{"SUBJECT: Legal notice for dishonour of cheque", true},
		{"ANNEXURES", true},
		{"ANNEXURES:", true},
		{"1. lower case start", false},
		{"1.FACTS", false},
		{"Subject: not a label", false},
		{"The sum of Rs. 5,00,000", false},
		{"a. FACTS", false},
	}
	for _, tc := range cases {
		if got := IsSectionHeading(tc.line); got != tc.want {
			t.Fatalf("IsSectionHeading(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := "  LEGAL NOTICE  \n\n1. TRANSACTION BACKGROUND\r\n   body text here   \n\t\n"
	got := Normalize(in, nil)
	want := []SourceLine{
		{Text: "LEGAL NOTICE"},
		{},
		{Text: "1. TRANSACTION BACKGROUND", Heading: true},
		{Text: "body text here"},
		{},
		{},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	got := Normalize("", nil)
	if len(got) != 1 || got[0] != (SourceLine{}) {
		t.Fatalf("Normalize(\"\") = %#v", got)
	}
}

func TestNormalizeCustomRule(t *testing.T) {
	rule := HeadingFunc(func(line string) bool { return strings.HasSuffix(line, ":") })
	got := Normalize("Facts:\n1. TRANSACTION", rule)
	if !got[0].Heading || got[1].Heading {
		t.Fatalf("custom rule not applied: %#v", got)
	}
}

func TestFontSize(t *testing.T) {
	if (SourceLine{Heading: true}).FontSize() <= (SourceLine{}).FontSize() {
		t.Fatalf("headings must render larger than body text")
	}
}

var spaces = regexp.MustCompile(`\s+`)

func rejoin(lines []PhysicalLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return spaces.ReplaceAllString(strings.Join(parts, " "), " ")
}

func TestWrapPreservesContent(t *testing.T) {
	inputs := []string{
		"short line",
		strings.Repeat("The drawer of the cheque failed to make payment within fifteen days. ", 12),
		"Rs.\t5,00,000/-   (Rupees Five Lakh only)   \\ backslash (parens)",
		"ÄÖÜ ñ ₹ 漢字 mixed scripts keep every rune",
	}
	for _, in := range inputs {
		src := Normalize(in, nil)[0]
		lines, err := Wrap(src, fonts.Heuristic{}, DefaultGeometry.MaxLineWidth())
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		want := spaces.ReplaceAllString(src.Text, " ")
		if got := rejoin(lines); got != want {
			t.Fatalf("rejoined text differs\n got: %q\nwant: %q", got, want)
		}
		for _, l := range lines {
			if l.Heading != src.Heading || l.FontSize != src.FontSize() {
				t.Fatalf("line %q lost style", l.Text)
			}
		}
	}
}

func TestWrapFitsBudget(t *testing.T) {
	src := SourceLine{Text: strings.Repeat("word ", 200)}
	budget := DefaultGeometry.MaxLineWidth()
	lines, err := Wrap(src, fonts.Heuristic{}, budget)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		if w := fonts.Measure(fonts.Heuristic{}, l.Text, l.FontSize); w > budget {
			t.Fatalf("line %q is %v wide, budget %v", l.Text, w, budget)
		}
	}
}

func TestWrapMeasuresEncodedText(t *testing.T) {
	src := SourceLine{Text: strings.Repeat("₹5,000 ", 60)}
	budget := DefaultGeometry.MaxLineWidth()
	lines, err := Wrap(src, fonts.Heuristic{}, budget)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l.Text, "₹") {
			t.Fatalf("source text altered: %q", l.Text)
		}
		drawn := fonts.WinAnsiText(l.Text)
		if w := fonts.Measure(fonts.Heuristic{}, drawn, l.FontSize); w > budget {
			t.Fatalf("line %q draws %v wide, budget %v", drawn, w, budget)
		}
	}
}

func TestWrapOversizedToken(t *testing.T) {
	long := strings.Repeat("X", 200)
	src := SourceLine{Text: "before " + long + " after"}
	lines, err := Wrap(src, fonts.Heuristic{}, DefaultGeometry.MaxLineWidth())
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %#v", len(lines), lines)
	}
	if lines[1].Text != long {
		t.Fatalf("oversized token was altered")
	}
}

func TestWrapEmptyLine(t *testing.T) {
	lines, err := Wrap(SourceLine{}, fonts.Heuristic{}, 100)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if len(lines) != 1 || !lines[0].Blank() {
		t.Fatalf("empty source must give one blank line, got %#v", lines)
	}
}

func TestWrapAllKeepsOrder(t *testing.T) {
	src := Normalize("first\n\nsecond", nil)
	lines, err := WrapAll(src, fonts.Heuristic{}, DefaultGeometry.MaxLineWidth())
	if err != nil {
		t.Fatalf("WrapAll: %v", err)
	}
	if len(lines) != 3 || lines[0].Text != "first" || !lines[1].Blank() || lines[2].Text != "second" {
		t.Fatalf("unexpected lines %#v", lines)
	}
}

func physical(n int) []PhysicalLine {
	out := make([]PhysicalLine, n)
	for i := range out {
		out[i] = PhysicalLine{Text: fmt.Sprintf("Line %d", i+1), FontSize: BodyFontSize}
	}
	return out
}

func TestPaginate(t *testing.T) {
	g := DefaultGeometry
	lpp := g.LinesPerPage()
	for _, n := range []int{1, lpp - 1, lpp, lpp + 1, 50, 3*lpp + 7} {
		pages := Paginate(physical(n), g)
		want := (n + lpp - 1) / lpp
		if len(pages) != want {
			t.Fatalf("%d lines: got %d pages, want %d", n, len(pages), want)
		}
		total := 0
		for i, p := range pages {
			if p.Number != i+1 {
				t.Fatalf("page %d numbered %d", i+1, p.Number)
			}
			if len(p.Lines) == 0 || len(p.Lines) > lpp {
				t.Fatalf("page %d has %d lines", p.Number, len(p.Lines))
			}
			total += len(p.Lines)
		}
		if total != n {
			t.Fatalf("lines lost: %d of %d", total, n)
		}
	}
}

func TestPaginateSecondPageStartsAtLine43(t *testing.T) {
	pages := Paginate(physical(50), DefaultGeometry)
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if got := pages[1].Lines[0].Text; got != "Line 43" {
		t.Fatalf("page 2 starts with %q", got)
	}
	if len(pages[1].Lines) != 8 {
		t.Fatalf("page 2 has %d lines, want 8", len(pages[1].Lines))
	}
}

func TestPaginateBlankLinesTakeSlots(t *testing.T) {
	lines := physical(41)
	lines = append(lines, PhysicalLine{}, PhysicalLine{Text: "after blank"})
	pages := Paginate(lines, DefaultGeometry)
	if len(pages) != 2 || pages[1].Lines[0].Text != "after blank" {
		t.Fatalf("blank line did not consume a slot: %d pages", len(pages))
	}
}

func TestPaginateNoLines(t *testing.T) {
	pages := Paginate(nil, DefaultGeometry)
	if len(pages) != 1 || len(pages[0].Lines) != 1 || !pages[0].Lines[0].Blank() {
		t.Fatalf("expected one page with a placeholder blank, got %#v", pages)
	}
}
