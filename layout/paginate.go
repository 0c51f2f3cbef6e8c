package layout

// Page is a closed run of physical lines in reading order. Number is 1-based.
type Page struct {
	Number int
	Lines  []PhysicalLine
}

// planState is the accumulator threaded through pagination.
type planState struct {
	capacity int
	open     Page
	closed   []Page
}

// place appends line to the open page and closes it once full.
func place(st planState, line PhysicalLine) planState {
	st.open.Lines = append(st.open.Lines, line)
	if len(st.open.Lines) == st.capacity {
		st.closed = append(st.closed, st.open)
		st.open = Page{Number: st.open.Number + 1}
	}
	return st
}

// finish closes a partially filled page.
func finish(st planState) []Page {
	if len(st.open.Lines) > 0 {
		st.closed = append(st.closed, st.open)
	}
	return st.closed
}

// Paginate packs lines into pages of g.LinesPerPage() lines. It always returns
// at least one page; with no input that page holds a single blank line.
func Paginate(lines []PhysicalLine, g Geometry) []Page {
	if len(lines) == 0 {
		return []Page{{Number: 1, Lines: []PhysicalLine{{FontSize: BodyFontSize}}}}
	}
	st := planState{capacity: g.LinesPerPage(), open: Page{Number: 1}}
	for _, l := range lines {
		st = place(st, l)
	}
	return finish(st)
}
