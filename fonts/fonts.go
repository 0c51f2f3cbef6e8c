// Package fonts provides the width models used to estimate rendered text
// width during word wrapping. None of them embed anything into the output:
// documents always reference the standard Helvetica faces.
package fonts

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tableSize covers ASCII and Latin-1; other runes are measured on demand.
const tableSize = 256

// SFNT measures runes with real glyph advances from a TrueType/OpenType font.
type SFNT struct {
	font       *sfnt.Font
	unitsPerEm sfnt.Units
	table      [tableSize]float64
	fallback   float64
	digest     string
}

// NewSFNT parses font data and precomputes advances for the Latin-1 range.
func NewSFNT(data []byte) (*SFNT, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("truetype font data is empty")
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	unitsPerEm := f.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, fmt.Errorf("invalid unitsPerEm")
	}
	m := &SFNT{font: f, unitsPerEm: unitsPerEm, fallback: defaultAdvance, digest: fontDigest(ModelSFNT, data)}
	buf := &sfnt.Buffer{}
	if w, ok := m.lookup(buf, 'n'); ok {
		m.fallback = w
	}
	for r := rune(0); r < tableSize; r++ {
		if w, ok := m.lookup(buf, r); ok {
			m.table[r] = w
		} else {
			m.table[r] = m.fallback
		}
	}
	return m, nil
}

// NewGoRegular measures with the Go Regular font shipped in x/image.
func NewGoRegular() (*SFNT, error) {
	return NewSFNT(goregular.TTF)
}

func (m *SFNT) Fingerprint() string { return m.digest }

func (m *SFNT) Advance(r rune) float64 {
	if r >= 0 && r < tableSize {
		return m.table[r]
	}
	// A nil buffer makes sfnt allocate one, so concurrent calls stay independent.
	if w, ok := m.lookup(nil, r); ok {
		return w
	}
	return m.fallback
}

func (m *SFNT) lookup(buf *sfnt.Buffer, r rune) (float64, bool) {
	gid, err := m.font.GlyphIndex(buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	ppem := fixed.Int26_6(m.unitsPerEm << 6)
	adv, err := m.font.GlyphAdvance(buf, gid, ppem, xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return scaleFixed(adv, m.unitsPerEm), true
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) / (64.0 * float64(unitsPerEm))
}
