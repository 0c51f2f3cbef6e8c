package fonts

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/image/font/gofont/goregular"
)

// WidthModel estimates how wide a rune renders, in em units (the advance at a
// 1pt font size). Implementations must be pure and safe for concurrent use.
type WidthModel interface {
	Advance(r rune) float64
}

// Heuristic is the default width model: fixed multipliers per character
// class. It approximates Helvetica closely enough for line breaking.
type Heuristic struct{}

const (
	spaceAdvance   = 0.28
	upperAdvance   = 0.62
	lowerAdvance   = 0.52
	digitAdvance   = 0.55
	defaultAdvance = 0.5
)

// Fingerprint names the measurements a model produces, for cache keys.
func (Heuristic) Fingerprint() string { return ModelHeuristic }

func (Heuristic) Advance(r rune) float64 {
	switch {
	case r == ' ':
		return spaceAdvance
	case r >= 'A' && r <= 'Z':
		return upperAdvance
	case r >= 'a' && r <= 'z':
		return lowerAdvance
	case r >= '0' && r <= '9':
		return digitAdvance
	}
	return defaultAdvance
}

// fontDigest identifies a model by the font data it measures with.
func fontDigest(model string, data []byte) string {
	sum := blake2b.Sum256(data)
	return model + ":" + hex.EncodeToString(sum[:8])
}

// Measure returns the estimated width of text at size points.
func Measure(m WidthModel, text string, size float64) float64 {
	var w float64
	for _, r := range text {
		w += m.Advance(r)
	}
	return w * size
}

// Names accepted by Named.
const (
	ModelHeuristic = "heuristic"
	ModelSFNT      = "sfnt"
	ModelShaped    = "shaped"
)

// Named returns the width model registered under name. The empty name is the
// heuristic model. The font-backed models measure with Go Regular.
func Named(name string) (WidthModel, error) {
	switch name {
	case "", ModelHeuristic:
		return Heuristic{}, nil
	case ModelSFNT:
		return NewGoRegular()
	case ModelShaped:
		return NewShaped(goregular.TTF)
	}
	return nil, fmt.Errorf("unknown width model %q", name)
}
