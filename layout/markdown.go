package layout

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromMarkdown converts a Markdown notice into source lines. Markdown headings
// become heading lines; other blocks become body lines separated by a blank
// line.
func FromMarkdown(source string) []SourceLine {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var sink lineSink
	walkMarkdown(&sink, doc, src)
	return sink.result()
}

func walkMarkdown(sink *lineSink, node ast.Node, src []byte) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			sink.add(inlineText(n, src), true)
			sink.blank()
		case *ast.Paragraph, *ast.TextBlock:
			sink.add(inlineText(n, src), false)
			sink.blank()
		case *ast.List:
			markdownList(sink, n, src)
			sink.blank()
		case *ast.Blockquote:
			walkMarkdown(sink, n, src)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			sink.add(blockLines(n, src), false)
			sink.blank()
		case *ast.ThematicBreak:
			sink.blank()
		}
	}
}

func markdownList(sink *lineSink, list *ast.List, src []byte) {
	num := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "-"
		if list.IsOrdered() {
			marker = strconv.Itoa(num) + string(list.Marker)
			num++
		}
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				markdownList(sink, nested, src)
				continue
			}
			line := inlineText(c, src)
			if first {
				line = marker + " " + line
				first = false
			}
			sink.add(line, false)
		}
	}
}

// inlineText flattens the inline content of n. Hard breaks survive as
// newlines, soft breaks become spaces.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			if v.HardLineBreak() {
				sb.WriteByte('\n')
			} else if v.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.AutoLink:
			sb.Write(v.URL(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
