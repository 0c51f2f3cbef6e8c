package layout

import "strings"

// lineSink collects source lines from the structured front-ends. Runs of
// blank lines collapse to one and leading/trailing blanks are dropped.
type lineSink struct {
	lines   []SourceLine
	pending bool
}

func (s *lineSink) add(text string, heading bool) {
	for _, part := range strings.Split(text, "\n") {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		if s.pending && len(s.lines) > 0 {
			s.lines = append(s.lines, SourceLine{})
		}
		s.pending = false
		s.lines = append(s.lines, SourceLine{Text: part, Heading: heading})
	}
}

func (s *lineSink) blank() { s.pending = true }

func (s *lineSink) result() []SourceLine { return s.lines }
