package contentstream

import (
	"strconv"

	"github.com/wudi/noticepdf/defect"
	"github.com/wudi/noticepdf/fonts"
	"github.com/wudi/noticepdf/layout"
)

// Font resource names every page declares.
const (
	FontRegular = "F1"
	FontBold    = "F2"
)

// Header is the title block drawn at the top of every page.
type Header struct {
	Title    string
	Subtitle string
	// Offsets from the page centre to the start of each string. Zero means
	// centre the string by its estimated width.
	TitleOffset    float64
	SubtitleOffset float64
}

// DefaultHeader is the header of a cheque-dishonour notice.
var DefaultHeader = Header{
	Title:          "LEGAL NOTICE",
	Subtitle:       "Section 138 / 142 - Negotiable Instruments Act, 1881",
	TitleOffset:    86,
	SubtitleOffset: 128,
}

const (
	titleSize    = 20
	subtitleSize = 10
	footerSize   = 9
)

type gray float64

func (g gray) fill() Operation   { return op("rg", nums(float64(g), float64(g), float64(g))...) }
func (g gray) stroke() Operation { return op("RG", nums(float64(g), float64(g), float64(g))...) }

const (
	frameGray   gray = 0.22
	accentGray  gray = 0.35
	titleGray   gray = 0.1
	subGray     gray = 0.32
	ruleGray    gray = 0.45
	headingGray gray = 0.14
	bodyGray    gray = 0.08
	footerGray  gray = 0.4
)

// BuildPage emits the operators for one page: frame, header, rule, body
// lines and the page-number footer, in that order.
func BuildPage(page layout.Page, g layout.Geometry, h Header) ([]Operation, error) {
	if len(page.Lines) == 0 {
		return nil, defect.New("contentstream", "page %d has no lines", page.Number)
	}
	text, err := body(page, g)
	if err != nil {
		return nil, err
	}
	var ops []Operation
	ops = append(ops, frame(g)...)
	ops = append(ops, header(g, h)...)
	ops = append(ops, text...)
	ops = append(ops, footer(g, page.Number)...)
	return ops, nil
}

// BuildPageStream is BuildPage followed by Serialize.
func BuildPageStream(page layout.Page, g layout.Geometry, h Header) ([]byte, error) {
	ops, err := BuildPage(page, g, h)
	if err != nil {
		return nil, err
	}
	return Serialize(ops), nil
}

func frame(g layout.Geometry) []Operation {
	inset := g.Margin + 6
	return []Operation{
		op("q"),
		op("w", nums(0.8)...),
		frameGray.stroke(),
		op("re", nums(g.Margin, g.Margin, g.PageWidth-g.Margin*2, g.PageHeight-g.Margin*2)...),
		op("S"),
		op("w", nums(0.45)...),
		accentGray.stroke(),
		op("re", nums(inset, g.PageHeight-102, g.PageWidth-inset*2, 58)...),
		op("S"),
		op("Q"),
	}
}

func header(g layout.Geometry, h Header) []Operation {
	centre := g.PageWidth / 2
	titleX := centre - h.TitleOffset
	if h.TitleOffset == 0 {
		titleX = centre - fonts.Measure(fonts.Heuristic{}, fonts.WinAnsiText(h.Title), titleSize)/2
	}
	subX := centre - h.SubtitleOffset
	if h.SubtitleOffset == 0 {
		subX = centre - fonts.Measure(fonts.Heuristic{}, fonts.WinAnsiText(h.Subtitle), subtitleSize)/2
	}
	ruleY := g.PageHeight - 108
	return []Operation{
		op("BT"),
		op("Tf", NameOperand{Value: FontBold}, NumberOperand{Value: titleSize}),
		titleGray.fill(),
		op("Td", nums(titleX, g.PageHeight-70)...),
		op("Tj", StringOperand{Value: fonts.EncodeWinAnsi(h.Title)}),
		op("ET"),
		op("BT"),
		op("Tf", NameOperand{Value: FontRegular}, NumberOperand{Value: subtitleSize}),
		subGray.fill(),
		op("Td", nums(subX, g.PageHeight-88)...),
		op("Tj", StringOperand{Value: fonts.EncodeWinAnsi(h.Subtitle)}),
		op("ET"),
		op("q"),
		op("w", nums(1)...),
		ruleGray.stroke(),
		op("m", nums(g.Margin+20, ruleY)...),
		op("l", nums(g.PageWidth-g.Margin-20, ruleY)...),
		op("S"),
		op("Q"),
	}
}

// cursor is the vertical text position threaded through the body lines.
type cursor struct {
	y float64
}

// advance renders line at c. It reports false once c has passed the bottom
// content boundary, in which case nothing is emitted.
func (c cursor) advance(line layout.PhysicalLine, g layout.Geometry) (cursor, []Operation, bool) {
	if c.y < g.ContentBottom {
		return c, nil, false
	}
	if line.Blank() {
		return cursor{y: c.y - g.BlankAdvance()}, nil, true
	}
	font, tint := FontRegular, bodyGray
	if line.Heading {
		font, tint = FontBold, headingGray
	}
	ops := []Operation{
		op("Tf", NameOperand{Value: font}, NumberOperand{Value: line.FontSize}),
		tint.fill(),
		op("Tm", nums(1, 0, 0, 1, g.ContentLeft, c.y)...),
		op("Tj", StringOperand{Value: fonts.EncodeWinAnsi(line.Text)}),
	}
	return cursor{y: c.y - g.LineHeight}, ops, true
}

// body draws every line of a page. Running out of room is a structural
// defect: the planner must never hand over more than the page can hold.
func body(page layout.Page, g layout.Geometry) ([]Operation, error) {
	ops := []Operation{op("BT")}
	c := cursor{y: g.ContentTop}
	for i, line := range page.Lines {
		next, lineOps, ok := c.advance(line, g)
		if !ok {
			return nil, defect.New("contentstream", "page %d: only %d of %d lines fit above y=%s",
				page.Number, i, len(page.Lines), FormatNumber(g.ContentBottom))
		}
		ops = append(ops, lineOps...)
		c = next
	}
	return append(ops, op("ET")), nil
}

func footer(g layout.Geometry, pageNo int) []Operation {
	return []Operation{
		op("BT"),
		op("Tf", NameOperand{Value: FontRegular}, NumberOperand{Value: footerSize}),
		footerGray.fill(),
		op("Tm", nums(1, 0, 0, 1, g.PageWidth-96, g.Margin+10)...),
		op("Tj", StringOperand{Value: []byte("Page " + strconv.Itoa(pageNo))}),
		op("ET"),
	}
}
