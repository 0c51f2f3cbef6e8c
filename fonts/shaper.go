package fonts

import (
	"bytes"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shapeSize is 1000 units per em in 26.6 fixed point.
const shapeSize = fixed.Int26_6(1000 * 64)

// Shaped measures runes by running them through the HarfBuzz shaper.
// The Latin-1 range is shaped once up front; other runes are shaped on
// demand under a lock because the shaper keeps internal buffers.
type Shaped struct {
	table    [tableSize]float64
	fallback float64
	digest   string

	mu     sync.Mutex
	face   *gofont.Face
	shaper *shaping.HarfbuzzShaper
}

func (m *Shaped) Fingerprint() string { return m.digest }

// NewShaped parses an OpenType font and shapes the Latin-1 table.
func NewShaped(data []byte) (*Shaped, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	m := &Shaped{face: face, shaper: &shaping.HarfbuzzShaper{}, fallback: defaultAdvance, digest: fontDigest(ModelShaped, data)}
	if w, ok := m.shape('n'); ok {
		m.fallback = w
	}
	for r := rune(0); r < tableSize; r++ {
		if !unicode.IsPrint(r) {
			m.table[r] = m.fallback
			continue
		}
		if w, ok := m.shape(r); ok {
			m.table[r] = w
		} else {
			m.table[r] = m.fallback
		}
	}
	return m, nil
}

func (m *Shaped) Advance(r rune) float64 {
	if r >= 0 && r < tableSize {
		return m.table[r]
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.shape(r); ok {
		return w
	}
	return m.fallback
}

func (m *Shaped) shape(r rune) (float64, bool) {
	runes := []rune{r}
	script := scriptFromRune(r)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      m.face,
		Size:      shapeSize,
		Script:    script,
		Language:  language.DefaultLanguage(),
	}
	out := m.shaper.Shape(input)
	if len(out.Glyphs) == 0 {
		return 0, false
	}
	var adv fixed.Int26_6
	for _, g := range out.Glyphs {
		if g.GlyphID == 0 {
			return 0, false
		}
		adv += g.XAdvance
	}
	// Advances come back in 1/1000 em.
	return float64(adv) / 64.0 / 1000.0, true
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Devanagari, r):
		return language.Devanagari
	case unicode.Is(unicode.Tamil, r):
		return language.Tamil
	case unicode.Is(unicode.Han, r):
		return language.Han
	}
	return language.Latin
}
