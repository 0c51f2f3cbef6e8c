// Package layout turns composed notice text into paginated physical lines.
//
// The pipeline is Normalize -> Wrap -> Paginate. Every stage is a pure
// function of its input; nothing here touches shared state, so concurrent
// renders need no coordination.
package layout

import "math"

// Geometry holds the fixed page geometry in PDF points (1/72 inch).
type Geometry struct {
	PageWidth     float64
	PageHeight    float64
	Margin        float64
	ContentLeft   float64
	ContentRight  float64
	ContentTop    float64
	ContentBottom float64
	LineHeight    float64
}

// DefaultGeometry is the A4 layout every generated notice uses.
var DefaultGeometry = Geometry{
	PageWidth:     595,
	PageHeight:    842,
	Margin:        36,
	ContentLeft:   52,
	ContentRight:  595 - 52,
	ContentTop:    690,
	ContentBottom: 58,
	LineHeight:    15,
}

// Font sizes for the two text styles.
const (
	HeadingFontSize = 12
	BodyFontSize    = 11
)

// wrapGutter is kept free at the right edge of the content area.
const wrapGutter = 10

// MaxLineWidth is the width budget a physical line must fit into.
func (g Geometry) MaxLineWidth() float64 {
	return g.ContentRight - g.ContentLeft - wrapGutter
}

// LinesPerPage is the number of physical lines a page holds. Never below 1.
func (g Geometry) LinesPerPage() int {
	if g.LineHeight <= 0 {
		return 1
	}
	n := int(math.Floor((g.ContentTop - g.ContentBottom) / g.LineHeight))
	if n < 1 {
		return 1
	}
	return n
}

// BlankAdvance is the vertical allowance of an empty line.
func (g Geometry) BlankAdvance() float64 {
	return g.LineHeight - 3
}
