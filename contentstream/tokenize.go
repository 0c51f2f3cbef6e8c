package contentstream

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	errUnterminatedString = errors.New("unterminated string literal")
	errDanglingOperands   = errors.New("dangling operands")
)

// Parse reads a content stream back into operations. It understands the
// subset this package emits: numbers, names, literal strings and operators.
func Parse(data []byte) ([]Operation, error) {
	var (
		ops   []Operation
		stack []Operand
	)
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isSpace(c):
			i++
		case c == '(':
			val, next, err := readLiteral(data, i)
			if err != nil {
				return nil, err
			}
			stack = append(stack, StringOperand{Value: val})
			i = next
		case c == '/':
			j := i + 1
			for j < len(data) && isRegular(data[j]) {
				j++
			}
			stack = append(stack, NameOperand{Value: string(data[i+1 : j])})
			i = j
		default:
			j := i
			for j < len(data) && isRegular(data[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("unexpected byte %q at %d", c, i)
			}
			tok := string(data[i:j])
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				stack = append(stack, NumberOperand{Value: v})
			} else {
				ops = append(ops, Operation{Operator: tok, Operands: stack})
				stack = nil
			}
			i = j
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: %d", errDanglingOperands, len(stack))
	}
	return ops, nil
}

// readLiteral decodes the literal string starting at data[start] == '('.
func readLiteral(data []byte, start int) ([]byte, int, error) {
	var out []byte
	depth := 0
	for i := start; i < len(data); i++ {
		c := data[i]
		switch c {
		case '(':
			if depth > 0 {
				out = append(out, c)
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return out, i + 1, nil
			}
			out = append(out, c)
		case '\\':
			i++
			if i >= len(data) {
				return nil, 0, errUnterminatedString
			}
			switch e := data[i]; e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			default:
				if e >= '0' && e <= '7' {
					v := 0
					n := 0
					for n < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7' {
						v = v*8 + int(data[i]-'0')
						i++
						n++
					}
					i--
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return nil, 0, errUnterminatedString
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isRegular(c byte) bool {
	if isSpace(c) {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}

// CheckNesting verifies that BT/ET and q/Q pairs are balanced and that text
// objects are not nested.
func CheckNesting(ops []Operation) error {
	inText := false
	depth := 0
	for i, o := range ops {
		switch o.Operator {
		case "BT":
			if inText {
				return fmt.Errorf("nested BT at op %d", i)
			}
			inText = true
		case "ET":
			if !inText {
				return fmt.Errorf("ET without BT at op %d", i)
			}
			inText = false
		case "q":
			depth++
		case "Q":
			depth--
			if depth < 0 {
				return fmt.Errorf("unmatched Q at op %d", i)
			}
		}
	}
	if inText || depth != 0 {
		return fmt.Errorf("unbalanced stream: text open=%v, save depth=%d", inText, depth)
	}
	return nil
}
