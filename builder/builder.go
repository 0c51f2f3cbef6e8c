// Package builder runs the notice pipeline end to end: source lines are
// wrapped, paginated, drawn into content streams, assembled into an object
// graph and serialized with an exact cross-reference table.
package builder

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/wudi/noticepdf/contentstream"
	"github.com/wudi/noticepdf/fonts"
	"github.com/wudi/noticepdf/layout"
	"github.com/wudi/noticepdf/observability"
	"github.com/wudi/noticepdf/writer"
)

// Document is a rendered notice.
type Document struct {
	Bytes   []byte
	Pages   int
	Objects int
	Lines   int
	// Digest is the hex BLAKE2b-256 of Bytes.
	Digest string
}

// Builder renders notices with a fixed configuration. A Builder holds no
// mutable state and may be shared between goroutines.
type Builder struct {
	widths      fonts.WidthModel
	rule        layout.HeadingRule
	header      contentstream.Header
	geometry    layout.Geometry
	log         observability.Logger
	fingerprint string
}

// Option configures a Builder.
type Option func(*Builder)

func WithWidthModel(m fonts.WidthModel) Option {
	return func(b *Builder) {
		if m != nil {
			b.widths = m
		}
	}
}

func WithHeadingRule(r layout.HeadingRule) Option {
	return func(b *Builder) {
		if r != nil {
			b.rule = r
		}
	}
}

// WithHeader replaces the title block drawn on every page.
func WithHeader(h contentstream.Header) Option {
	return func(b *Builder) { b.header = h }
}

func WithGeometry(g layout.Geometry) Option {
	return func(b *Builder) { b.geometry = g }
}

func WithLogger(l observability.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// New returns a Builder using the heuristic width model, the section heading
// rule, the default header and the A4 geometry unless overridden.
func New(opts ...Option) *Builder {
	b := &Builder{
		widths:   fonts.Heuristic{},
		rule:     layout.DefaultHeadingRule,
		header:   contentstream.DefaultHeader,
		geometry: layout.DefaultGeometry,
		log:      observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.fingerprint = b.configDigest()
	return b
}

// Fingerprint identifies everything that shapes the output besides the input
// text: header, geometry, width model and heading rule. Two builders with
// the same fingerprint render identical bytes for identical input.
func (b *Builder) Fingerprint() string { return b.fingerprint }

type fingerprinter interface {
	Fingerprint() string
}

// identity names a configured component. Components without a fingerprint
// fall back to their type and value, which for functions is an address.
func identity(v any) string {
	if f, ok := v.(fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%T:%v", v, v)
}

func (b *Builder) configDigest() string {
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "header %q %q %v %v\n", b.header.Title, b.header.Subtitle, b.header.TitleOffset, b.header.SubtitleOffset)
	fmt.Fprintf(h, "geometry %+v\n", b.geometry)
	fmt.Fprintf(h, "widths %s\n", identity(b.widths))
	fmt.Fprintf(h, "rule %s\n", identity(b.rule))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Build renders plain notice text.
func (b *Builder) Build(text string) (*Document, error) {
	return b.BuildLines(layout.Normalize(text, b.rule))
}

// BuildFormat renders text written in the given input format.
func (b *Builder) BuildFormat(text string, format Format) (*Document, error) {
	lines, err := b.Lines(text, format)
	if err != nil {
		return nil, err
	}
	return b.BuildLines(lines)
}

// BuildLines renders already classified source lines.
func (b *Builder) BuildLines(lines []layout.SourceLine) (*Document, error) {
	start := time.Now()
	physical, err := layout.WrapAll(lines, b.widths, b.geometry.MaxLineWidth())
	if err != nil {
		return nil, err
	}
	pages := layout.Paginate(physical, b.geometry)

	contents := make([][]byte, 0, len(pages))
	for _, p := range pages {
		data, err := contentstream.BuildPageStream(p, b.geometry, b.header)
		if err != nil {
			return nil, err
		}
		contents = append(contents, data)
	}

	arena, err := writer.BuildObjects(contents, b.geometry)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf, arena); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	sum := blake2b.Sum256(buf.Bytes())
	doc := &Document{
		Bytes:   buf.Bytes(),
		Pages:   len(pages),
		Objects: arena.Len(),
		Lines:   len(physical),
		Digest:  hex.EncodeToString(sum[:]),
	}
	b.log.Debug("notice rendered",
		observability.Int(observability.MetricLineCount, doc.Lines),
		observability.Int(observability.MetricPageCount, doc.Pages),
		observability.Int(observability.MetricByteCount, len(doc.Bytes)),
		observability.Duration(observability.MetricRenderTime, time.Since(start)),
	)
	return doc, nil
}

// Render renders plain text with the default configuration.
func Render(text string) ([]byte, error) {
	doc, err := New().Build(text)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// Verify re-reads a rendered file and checks its structure.
func Verify(data []byte) (*writer.Report, error) {
	return writer.Verify(data)
}
