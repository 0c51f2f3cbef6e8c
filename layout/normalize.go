package layout

import (
	"regexp"
	"strings"
)

// SourceLine is one trimmed logical line of the input. An empty Text marks a
// deliberate blank line that renders as vertical spacing.
type SourceLine struct {
	Text    string
	Heading bool
}

// HeadingRule decides whether a trimmed, non-empty line is a heading.
type HeadingRule interface {
	IsHeading(line string) bool
}

// HeadingFunc adapts a plain function to HeadingRule.
type HeadingFunc func(line string) bool

func (f HeadingFunc) IsHeading(line string) bool { return f(line) }

var numberedSection = regexp.MustCompile(`^\d+\.\s+[A-Z]`)

// Section labels the notice templates emit as standalone headings.
var sectionLabels = []string{"SUBJECT:", "ANNEXURES"}

// IsSectionHeading reports whether line opens a numbered section ("1. FACTS")
// or starts with one of the fixed section labels.
func IsSectionHeading(line string) bool {
	if numberedSection.MatchString(line) {
		return true
	}
	for _, label := range sectionLabels {
		if strings.HasPrefix(line, label) {
			return true
		}
	}
	return false
}

// DefaultHeadingRule classifies with IsSectionHeading.
var DefaultHeadingRule HeadingRule = sectionRule{}

type sectionRule struct{}

func (sectionRule) IsHeading(line string) bool { return IsSectionHeading(line) }
func (sectionRule) Fingerprint() string        { return "sections" }

// Normalize splits text into trimmed source lines. Blank lines are kept as
// empty SourceLines. A nil rule means DefaultHeadingRule.
func Normalize(text string, rule HeadingRule) []SourceLine {
	if rule == nil {
		rule = DefaultHeadingRule
	}
	parts := strings.Split(text, "\n")
	out := make([]SourceLine, 0, len(parts))
	for _, p := range parts {
		line := strings.TrimSpace(p)
		if line == "" {
			out = append(out, SourceLine{})
			continue
		}
		out = append(out, SourceLine{Text: line, Heading: rule.IsHeading(line)})
	}
	return out
}

// FontSize is the point size the line renders at.
func (l SourceLine) FontSize() float64 {
	if l.Heading {
		return HeadingFontSize
	}
	return BodyFontSize
}
