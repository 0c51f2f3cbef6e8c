package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wudi/noticepdf/layout"
)

// Format names an input syntax.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat accepts a format name or a common alias. Empty means text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Lines converts text in format to source lines. Markdown and HTML headings
// are always headings; their remaining lines go through the heading rule so
// numbered sections in body text still render bold.
func (b *Builder) Lines(text string, format Format) ([]layout.SourceLine, error) {
	var lines []layout.SourceLine
	switch format {
	case FormatText, "":
		return layout.Normalize(text, b.rule), nil
	case FormatMarkdown:
		lines = layout.FromMarkdown(text)
	case FormatHTML:
		var err error
		if lines, err = layout.FromHTML(text); err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	for i, l := range lines {
		if !l.Heading && l.Text != "" {
			lines[i].Heading = b.rule.IsHeading(l.Text)
		}
	}
	return lines, nil
}
