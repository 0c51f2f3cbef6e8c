package raw

import (
	"bytes"
	"fmt"
	"strconv"
)

// Serialize renders o as PDF syntax. Dictionaries use "<< /Key value >>"
// with single spaces; streams are followed by their payload.
func Serialize(o Object) []byte {
	var b bytes.Buffer
	writeObject(&b, o)
	return b.Bytes()
}

func writeObject(b *bytes.Buffer, o Object) {
	switch v := o.(type) {
	case NameObj:
		b.WriteByte('/')
		b.WriteString(v.Val)
	case NumberObj:
		if v.IsInt {
			b.WriteString(strconv.FormatInt(v.I, 10))
		} else {
			b.WriteString(strconv.FormatFloat(v.F, 'f', -1, 64))
		}
	case *ArrayObj:
		b.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeObject(b, it)
		}
		b.WriteByte(']')
	case *DictObj:
		b.WriteString("<<")
		for _, e := range v.Entries {
			b.WriteString(" /")
			b.WriteString(e.Key)
			b.WriteByte(' ')
			writeObject(b, e.Value)
		}
		b.WriteString(" >>")
	case *StreamObj:
		writeObject(b, v.Dict)
		b.WriteString("\nstream\n")
		b.Write(v.Data)
		b.WriteString("\nendstream")
	case RefObj:
		fmt.Fprintf(b, "%d %d R", v.R.Num, v.R.Gen)
	default:
		b.WriteString("null")
	}
}
