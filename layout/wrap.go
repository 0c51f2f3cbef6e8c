package layout

import (
	"strings"

	"github.com/wudi/noticepdf/defect"
	"github.com/wudi/noticepdf/fonts"
)

// PhysicalLine is a source line fragment after wrapping.
type PhysicalLine struct {
	Text     string
	Heading  bool
	FontSize float64
}

// Blank reports whether the line only provides vertical spacing.
func (l PhysicalLine) Blank() bool { return l.Text == "" }

// Wrap greedily breaks line into physical lines no wider than maxWidth,
// measured with m on the text as it will be encoded. A token wider than maxWidth on its own is emitted as an
// oversized line. An empty line yields exactly one empty physical line.
func Wrap(line SourceLine, m fonts.WidthModel, maxWidth float64) ([]PhysicalLine, error) {
	size := line.FontSize()
	words := strings.Fields(line.Text)
	if len(words) == 0 {
		return []PhysicalLine{{Heading: line.Heading, FontSize: size}}, nil
	}

	emit := func(out []PhysicalLine, text string) []PhysicalLine {
		return append(out, PhysicalLine{Text: text, Heading: line.Heading, FontSize: size})
	}

	var out []PhysicalLine
	current := ""
	for _, w := range words {
		next := w
		if current != "" {
			next = current + " " + w
		}
		if fonts.Measure(m, fonts.WinAnsiText(next), size) <= maxWidth {
			current = next
			continue
		}
		if current != "" {
			out = emit(out, current)
		}
		current = w
	}
	out = emit(out, current)

	// Every token lands on exactly one line.
	if len(out) > len(words) {
		return nil, defect.New("wrap", "%d tokens produced %d lines", len(words), len(out))
	}
	return out, nil
}

// WrapAll wraps every source line in order.
func WrapAll(lines []SourceLine, m fonts.WidthModel, maxWidth float64) ([]PhysicalLine, error) {
	out := make([]PhysicalLine, 0, len(lines))
	for _, l := range lines {
		wrapped, err := Wrap(l, m, maxWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, wrapped...)
	}
	return out, nil
}
