package layout

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML converts an HTML notice (such as a rendered preview) into source
// lines. h1-h6 become heading lines; block elements and <br> break lines.
func FromHTML(source string) ([]SourceLine, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	w := &htmlWalker{}
	w.walk(doc)
	w.flush()
	return w.sink.result(), nil
}

type htmlWalker struct {
	sink    lineSink
	buf     strings.Builder
	heading bool
}

func (w *htmlWalker) flush() {
	w.sink.add(w.buf.String(), w.heading)
	w.buf.Reset()
	w.heading = false
}

func (w *htmlWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.buf.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Template:
			return
		case atom.Br:
			w.flush()
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			w.flush()
			w.heading = true
			w.children(n)
			w.flush()
			w.sink.blank()
			return
		case atom.P, atom.Ul, atom.Ol, atom.Table, atom.Blockquote, atom.Pre:
			w.flush()
			w.children(n)
			w.flush()
			w.sink.blank()
			return
		case atom.Li:
			w.flush()
			w.buf.WriteString("- ")
			w.children(n)
			w.flush()
			return
		case atom.Div, atom.Tr, atom.Section, atom.Article, atom.Header, atom.Footer:
			w.flush()
			w.children(n)
			w.flush()
			return
		}
	}
	w.children(n)
}

func (w *htmlWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}
