package writer

import (
	"github.com/wudi/noticepdf/defect"
	"github.com/wudi/noticepdf/ir/raw"
	"github.com/wudi/noticepdf/layout"
)

// Fixed identities of the document graph.
const (
	CatalogNum   = 1
	PagesNum     = 2
	FirstPageNum = 3
)

// Layout gives the positional identities for a document of n pages.
type Layout struct {
	Pages int
}

func (l Layout) PageNum(i int) int    { return FirstPageNum + i*2 }
func (l Layout) ContentNum(i int) int { return l.PageNum(i) + 1 }
func (l Layout) RegularFontNum() int  { return FirstPageNum + l.Pages*2 }
func (l Layout) BoldFontNum() int     { return l.RegularFontNum() + 1 }
func (l Layout) Size() int            { return l.BoldFontNum() }

// BuildObjects materializes the object graph for the given page content
// streams: catalog, page tree, one page and one content object per page, then
// the regular and bold fonts.
func BuildObjects(contents [][]byte, g layout.Geometry) (*raw.Arena, error) {
	if len(contents) == 0 {
		return nil, defect.New("objects", "document has no pages")
	}
	lay := Layout{Pages: len(contents)}
	arena := &raw.Arena{}
	add := func(obj raw.Object, want int) error {
		if ref := arena.Add(obj); ref.Num != want {
			return defect.AtObject("objects", ref.Num, 0, "assigned identity %d, layout expects %d", ref.Num, want)
		}
		return nil
	}

	catalog := raw.Dict().
		Set("Type", raw.NameLiteral("Catalog")).
		Set("Pages", raw.Ref(PagesNum, 0))
	if err := add(catalog, CatalogNum); err != nil {
		return nil, err
	}

	kids := raw.NewArray()
	for i := range contents {
		kids.Append(raw.Ref(lay.PageNum(i), 0))
	}
	pages := raw.Dict().
		Set("Type", raw.NameLiteral("Pages")).
		Set("Kids", kids).
		Set("Count", raw.NumberInt(int64(len(contents))))
	if err := add(pages, PagesNum); err != nil {
		return nil, err
	}

	for i, data := range contents {
		if err := add(pageDict(lay, i, g), lay.PageNum(i)); err != nil {
			return nil, err
		}
		if err := add(raw.NewStream(nil, data), lay.ContentNum(i)); err != nil {
			return nil, err
		}
	}

	if err := add(fontDict("Helvetica"), lay.RegularFontNum()); err != nil {
		return nil, err
	}
	if err := add(fontDict("Helvetica-Bold"), lay.BoldFontNum()); err != nil {
		return nil, err
	}
	return arena, nil
}

func pageDict(lay Layout, i int, g layout.Geometry) *raw.DictObj {
	media := raw.NewArray(raw.NumberInt(0), raw.NumberInt(0), number(g.PageWidth), number(g.PageHeight))
	fonts := raw.Dict().
		Set("F1", raw.Ref(lay.RegularFontNum(), 0)).
		Set("F2", raw.Ref(lay.BoldFontNum(), 0))
	return raw.Dict().
		Set("Type", raw.NameLiteral("Page")).
		Set("Parent", raw.Ref(PagesNum, 0)).
		Set("MediaBox", media).
		Set("Resources", raw.Dict().Set("Font", fonts)).
		Set("Contents", raw.Ref(lay.ContentNum(i), 0))
}

func fontDict(base string) *raw.DictObj {
	return raw.Dict().
		Set("Type", raw.NameLiteral("Font")).
		Set("Subtype", raw.NameLiteral("Type1")).
		Set("BaseFont", raw.NameLiteral(base)).
		Set("Encoding", raw.NameLiteral("WinAnsiEncoding"))
}

func number(v float64) raw.NumberObj {
	if v == float64(int64(v)) {
		return raw.NumberInt(int64(v))
	}
	return raw.NumberFloat(v)
}
