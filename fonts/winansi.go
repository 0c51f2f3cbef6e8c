package fonts

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Runes WinAnsi lacks but notices commonly carry.
var substitutions = map[rune]string{
	'₹': "Rs.", // rupee sign
	'‐': "-",
	'‑': "-",
	'−': "-",
	'―': "-",
	'′': "'",
	'″': "\"",
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// WinAnsiText returns s as the standard Helvetica faces will draw it. A rune
// WinAnsiEncoding lacks is replaced by its substitution, or else by its
// compatibility decomposition without combining marks, with '?' standing in
// for every rune that still cannot be encoded. Line breaking measures this
// form so the width matches what is drawn.
func WinAnsiText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if encodable(r) {
			sb.WriteRune(r)
			continue
		}
		substitute(&sb, r)
	}
	return sb.String()
}

// EncodeWinAnsi converts s to WinAnsiEncoding bytes. The same rune always
// maps to the same bytes.
func EncodeWinAnsi(s string) []byte {
	folded := WinAnsiText(s)
	out := make([]byte, 0, len(folded))
	for _, r := range folded {
		b, _ := charmap.Windows1252.EncodeRune(r)
		out = append(out, b)
	}
	return out
}

func encodable(r rune) bool {
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}

func substitute(sb *strings.Builder, r rune) {
	if sub, ok := substitutions[r]; ok {
		sb.WriteString(sub)
		return
	}
	folded, _, err := transform.String(stripMarks, string(r))
	if err != nil || folded == "" {
		sb.WriteByte('?')
		return
	}
	for _, d := range folded {
		if encodable(d) {
			sb.WriteRune(d)
		} else {
			sb.WriteByte('?')
		}
	}
}
