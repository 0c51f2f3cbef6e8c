package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wudi/noticepdf/contentstream"
	"github.com/wudi/noticepdf/defect"
)

// Report summarizes a file that passed Verify.
type Report struct {
	Version string
	Objects int
	Offsets []int64
	Root    int
	Pages   int
}

var (
	sizeRe   = regexp.MustCompile(`/Size (\d+)`)
	rootRe   = regexp.MustCompile(`/Root (\d+) 0 R`)
	lengthRe = regexp.MustCompile(`/Length (\d+)`)
	countRe  = regexp.MustCompile(`/Count (\d+)`)
)

// Verify re-reads a file produced by Serialize and checks that the
// cross-reference table points at every object, that stream lengths match
// their data, and that every page content stream tokenizes with balanced
// text and graphics state blocks.
func Verify(data []byte) (*Report, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, defect.New("verify", "missing %%PDF header")
	}
	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return nil, defect.New("verify", "truncated header")
	}
	rep := &Report{Version: string(data[len("%PDF-"):nl])}

	xrefAt, err := startXRef(data)
	if err != nil {
		return nil, err
	}
	offsets, trailer, err := readXRef(data, xrefAt)
	if err != nil {
		return nil, err
	}
	rep.Offsets = offsets
	rep.Objects = len(offsets)

	size, ok := intField(sizeRe, trailer)
	if !ok || size != len(offsets)+1 {
		return nil, defect.New("verify", "trailer /Size %d, xref has %d entries", size, len(offsets)+1)
	}
	if rep.Root, ok = intField(rootRe, trailer); !ok || rep.Root < 1 || rep.Root > len(offsets) {
		return nil, defect.New("verify", "trailer /Root missing or dangling")
	}

	declared := -1
	for i, off := range offsets {
		num := i + 1
		body, err := objectBody(data, num, off, xrefAt)
		if err != nil {
			return nil, err
		}
		switch {
		case bytes.Contains(body, []byte("/Type /Pages")):
			if n, ok := intField(countRe, string(body)); ok {
				declared = n
			}
		case bytes.Contains(body, []byte("/Type /Page ")):
			rep.Pages++
		}
		if err := checkStream(body, num, off); err != nil {
			return nil, err
		}
	}
	if declared != rep.Pages {
		return nil, defect.New("verify", "page tree declares %d pages, found %d", declared, rep.Pages)
	}
	return rep, nil
}

func startXRef(data []byte) (int64, error) {
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return 0, defect.New("verify", "startxref not found")
	}
	if !bytes.HasSuffix(data, []byte(EOFMarker)) {
		return 0, defect.New("verify", "missing %%%%EOF marker")
	}
	fields := strings.Fields(string(data[idx+len("startxref"):]))
	if len(fields) == 0 {
		return 0, defect.New("verify", "startxref has no offset")
	}
	off, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || off <= 0 || off >= int64(len(data)) {
		return 0, defect.New("verify", "xref offset out of range: %q", fields[0])
	}
	if !bytes.HasPrefix(data[off:], []byte("xref\n")) {
		return 0, defect.AtObject("verify", 0, off, "xref keyword not found at offset")
	}
	return off, nil
}

// readXRef returns the in-use offsets in identity order and the trailer
// dictionary text.
func readXRef(data []byte, at int64) ([]int64, string, error) {
	sc := bufio.NewScanner(bytes.NewReader(data[at:]))
	sc.Scan() // xref
	if !sc.Scan() {
		return nil, "", defect.New("verify", "empty xref section")
	}
	parts := strings.Fields(sc.Text())
	if len(parts) != 2 || parts[0] != "0" {
		return nil, "", defect.New("verify", "invalid xref subsection header: %q", sc.Text())
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil || count < 1 {
		return nil, "", defect.New("verify", "invalid xref count: %q", parts[1])
	}
	offsets := make([]int64, 0, count-1)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return nil, "", defect.New("verify", "unexpected end of xref section")
		}
		line := sc.Text()
		fields := strings.Fields(line)
		if len(line) != 19 || len(fields) != 3 {
			return nil, "", defect.New("verify", "invalid xref entry: %q", line)
		}
		if i == 0 {
			if fields[2] != "f" {
				return nil, "", defect.New("verify", "entry 0 must be free")
			}
			continue
		}
		if fields[2] != "n" {
			return nil, "", defect.AtObject("verify", i, 0, "entry is not in use")
		}
		off, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, "", defect.AtObject("verify", i, 0, "parse xref offset: %v", err)
		}
		offsets = append(offsets, off)
	}
	var trailer strings.Builder
	for sc.Scan() {
		if sc.Text() == "startxref" {
			break
		}
		trailer.WriteString(sc.Text())
		trailer.WriteByte('\n')
	}
	if !strings.HasPrefix(trailer.String(), "trailer\n") {
		return nil, "", defect.New("verify", "trailer not found after xref")
	}
	return offsets, trailer.String(), nil
}

func objectBody(data []byte, num int, off, limit int64) ([]byte, error) {
	if off <= 0 || off >= limit {
		return nil, defect.AtObject("verify", num, off, "offset outside object region")
	}
	prefix := fmt.Sprintf("%d 0 obj\n", num)
	rest := data[off:limit]
	if !bytes.HasPrefix(rest, []byte(prefix)) {
		return nil, defect.AtObject("verify", num, off, "offset does not start %q", strings.TrimSpace(prefix))
	}
	end := bytes.Index(rest, []byte("\nendobj\n"))
	if end < 0 {
		return nil, defect.AtObject("verify", num, off, "endobj not found")
	}
	return rest[len(prefix):end], nil
}

func checkStream(body []byte, num int, off int64) error {
	start := bytes.Index(body, []byte("\nstream\n"))
	if start < 0 {
		return nil
	}
	end := bytes.LastIndex(body, []byte("\nendstream"))
	if end < start {
		return defect.AtObject("verify", num, off, "endstream not found")
	}
	payload := body[start+len("\nstream\n") : end]
	want, ok := intField(lengthRe, string(body[:start]))
	if !ok || want != len(payload) {
		return defect.AtObject("verify", num, off, "stream /Length %d, data is %d bytes", want, len(payload))
	}
	ops, err := contentstream.Parse(payload)
	if err != nil {
		return defect.AtObject("verify", num, off, "content: %v", err)
	}
	if err := contentstream.CheckNesting(ops); err != nil {
		return defect.AtObject("verify", num, off, "content: %v", err)
	}
	return nil
}

func intField(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}
