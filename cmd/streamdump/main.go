package main

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/wudi/noticepdf/builder"
	"github.com/wudi/noticepdf/contentstream"
)

var lengthRe = regexp.MustCompile(`/Length (\d+) >>\nstream\n`)

// streamdump prints the operators of every content stream in a rendered
// notice, one per line, prefixed with the stream's object number.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: streamdump <pdf>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
	rep, err := builder.Verify(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		os.Exit(1)
	}

	for i, off := range rep.Offsets {
		end := len(data)
		if i+1 < len(rep.Offsets) {
			end = int(rep.Offsets[i+1])
		}
		obj := data[off:end]
		m := lengthRe.FindSubmatchIndex(obj)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(string(obj[m[2]:m[3]]))
		ops, err := contentstream.Parse(obj[m[1] : m[1]+n])
		if err != nil {
			fmt.Printf("%d: ERR %v\n", i+1, err)
			continue
		}
		for _, op := range ops {
			line := contentstream.Serialize([]contentstream.Operation{op})
			fmt.Printf("%d: %s\n", i+1, bytes.TrimSpace(line))
		}
	}
	fmt.Printf("%d objects, %d pages\n", rep.Objects, rep.Pages)
}
