// Package contentstream builds the drawing and text-placement operators of a
// notice page and serializes them into a PDF content stream.
package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// Operation is one content-stream operator with its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a type-safe operand value.
type Operand interface {
	operand()
	Type() string
}

type NumberOperand struct{ Value float64 }

func (NumberOperand) operand()     {}
func (NumberOperand) Type() string { return "number" }

type NameOperand struct{ Value string }

func (NameOperand) operand()     {}
func (NameOperand) Type() string { return "name" }

// StringOperand holds already-encoded bytes; escaping happens on serialization.
type StringOperand struct{ Value []byte }

func (StringOperand) operand()     {}
func (StringOperand) Type() string { return "string" }

func op(operator string, operands ...Operand) Operation {
	return Operation{Operator: operator, Operands: operands}
}

func nums(vals ...float64) []Operand {
	out := make([]Operand, len(vals))
	for i, v := range vals {
		out[i] = NumberOperand{Value: v}
	}
	return out
}

// Serialize writes ops one per line, operands before the operator.
func Serialize(ops []Operation) []byte {
	var buf bytes.Buffer
	for i, o := range ops {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for _, operand := range o.Operands {
			buf.Write(serializeOperand(operand))
			buf.WriteByte(' ')
		}
		buf.WriteString(o.Operator)
	}
	return buf.Bytes()
}

func serializeOperand(o Operand) []byte {
	switch v := o.(type) {
	case NumberOperand:
		return []byte(FormatNumber(v.Value))
	case NameOperand:
		return []byte("/" + v.Value)
	case StringOperand:
		return EscapeLiteral(v.Value)
	default:
		return []byte("null")
	}
}

// FormatNumber prints v in the shortest form without an exponent.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EscapeLiteral wraps raw in parentheses, prefixing the reserved characters
// \ ( ) with a backslash. Control bytes and bytes outside ASCII are written
// as octal escapes so the stream stays 7-bit clean.
func EscapeLiteral(raw []byte) []byte {
	var b bytes.Buffer
	b.WriteByte('(')
	for _, ch := range raw {
		switch ch {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		case '\b':
			b.WriteString("\\b")
		case '\f':
			b.WriteString("\\f")
		default:
			if ch < 0x20 || ch >= 0x80 {
				fmt.Fprintf(&b, "\\%03o", ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	b.WriteByte(')')
	return b.Bytes()
}
