// Package writer turns page content streams into a complete PDF file: it
// builds the object graph and serializes it with a cross-reference table of
// exact byte offsets.
package writer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wudi/noticepdf/defect"
	"github.com/wudi/noticepdf/ir/raw"
)

// Header opens every file: the version line and a binary marker comment.
const Header = "%PDF-1.4\n%\xE2\xE3\xCF\xD3\n"

// EOFMarker closes every file.
const EOFMarker = "%%EOF\n"

// record renders one indirect object.
func record(ref raw.ObjectRef, obj raw.Object) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d obj\n", ref.Num, ref.Gen)
	buf.Write(raw.Serialize(obj))
	buf.WriteString("\nendobj\n")
	return buf.Bytes()
}

// offsetState is the accumulator of the serialization fold: the running
// byte size and the offset recorded for each object so far. A state owns
// its offsets slice, so a state passed to appendRecord must not be reused.
type offsetState struct {
	size    int64
	offsets []int64
}

// appendRecord records the current size as the next object's offset and
// advances past a record of n bytes.
func appendRecord(st offsetState, n int64) offsetState {
	st.offsets = append(st.offsets, st.size)
	st.size += n
	return st
}

// plan renders every record and folds their offsets.
func plan(arena *raw.Arena) ([][]byte, offsetState, error) {
	records := make([][]byte, 0, arena.Len())
	st := offsetState{size: int64(len(Header)), offsets: make([]int64, 0, arena.Len())}
	arena.Each(func(ref raw.ObjectRef, obj raw.Object) {
		rec := record(ref, obj)
		records = append(records, rec)
		st = appendRecord(st, int64(len(rec)))
	})
	if len(st.offsets) != arena.Len() {
		return nil, st, defect.New("serializer", "%d offsets for %d objects", len(st.offsets), arena.Len())
	}
	return records, st, nil
}

// xrefSection renders the cross-reference table, trailer and startxref.
func xrefSection(st offsetState) []byte {
	size := len(st.offsets) + 1
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range st.offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\n", size, CatalogNum)
	fmt.Fprintf(&buf, "startxref\n%d\n", st.size)
	buf.WriteString(EOFMarker)
	return buf.Bytes()
}

// WriteTo streams the file for arena to w. A second fold over the bytes
// actually written must reach every object at the offset the plan recorded
// for it.
func WriteTo(w io.Writer, arena *raw.Arena) (int64, error) {
	if arena == nil || arena.Len() == 0 {
		return 0, defect.New("serializer", "no objects to write")
	}
	records, st, err := plan(arena)
	if err != nil {
		return 0, err
	}
	var written offsetState
	n, err := io.WriteString(w, Header)
	written.size += int64(n)
	if err != nil {
		return written.size, err
	}
	for i, rec := range records {
		if written.size != st.offsets[i] {
			return written.size, defect.AtObject("serializer", i+1, written.size, "recorded offset %d", st.offsets[i])
		}
		n, err := w.Write(rec)
		written = appendRecord(written, int64(n))
		if err != nil {
			return written.size, err
		}
	}
	if written.size != st.size {
		return written.size, defect.AtObject("serializer", 0, written.size, "xref expected at %d", st.size)
	}
	n, err = w.Write(xrefSection(st))
	return written.size + int64(n), err
}

// Serialize returns the complete file for arena.
func Serialize(arena *raw.Arena) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteTo(&buf, arena); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
