// Package server exposes notice rendering over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/wudi/noticepdf/builder"
	"github.com/wudi/noticepdf/cache"
	"github.com/wudi/noticepdf/defect"
	"github.com/wudi/noticepdf/observability"
)

// RenderPath is the notice rendering endpoint.
const RenderPath = "/v1/notices/pdf"

// RenderRequest is the JSON body of POST /v1/notices/pdf.
type RenderRequest struct {
	CaseID string `json:"case_id"`
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
}

type Options struct {
	Builder       *builder.Builder
	Cache         cache.Store // nil disables caching
	CacheTTL      time.Duration
	MaxInputBytes int64
	RateLimit     float64 // requests per second, 0 disables
	RateBurst     int
	Logger        observability.Logger
}

// Server renders notices for HTTP clients.
type Server struct {
	builder  *builder.Builder
	cache    cache.Store
	ttl      time.Duration
	maxBytes int64
	limiter  *rate.Limiter
	log      observability.Logger
	now      func() time.Time
	newID    func() string
}

func New(opts Options) *Server {
	s := &Server{
		builder:  opts.Builder,
		cache:    opts.Cache,
		ttl:      opts.CacheTTL,
		maxBytes: opts.MaxInputBytes,
		log:      opts.Logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	if s.builder == nil {
		s.builder = builder.New()
	}
	if s.log == nil {
		s.log = observability.NopLogger{}
	}
	if s.maxBytes <= 0 {
		s.maxBytes = 1 << 20
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))
	}
	return s
}

// Handler returns the routed handler with recovery, access logging and rate
// limiting applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("POST "+RenderPath, rateLimitWrapper(s.limiter, s.log)(http.HandlerFunc(s.handleRender)))
	return chain(mux, recoverWrapper(s.log), accessLogWrapper(s.log))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	encodeWriteJSON(w, http.StatusOK, Message{Type: "ok", Message: "healthy"}, s.log)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), s.log)
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error(), s.log)
		return
	}
	format, err := builder.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error(), s.log)
		return
	}

	data, pages, err := s.render(r, req.Text, format)
	if err != nil {
		s.log.Error("render failed", observability.String("case_id", req.CaseID), observability.Error("error", err))
		code := CodeInternal
		if defect.Is(err) {
			code = CodeRender
		}
		writeError(w, http.StatusInternalServerError, code, "failed to generate notice", s.log)
		return
	}

	etag := `"` + etagOf(data) + `"`
	w.Header().Set("ETag", etag)
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("X-Document-Id", s.newID())
	w.Header().Set("X-Page-Count", strconv.Itoa(pages))
	writePDF(w, s.filename(req.CaseID), data, s.log)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (RenderRequest, error) {
	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, fmt.Errorf("invalid json body: %w", err)
	}
	req.CaseID = strings.TrimSpace(req.CaseID)
	if req.CaseID == "" || strings.TrimSpace(req.Text) == "" {
		return req, errors.New("case_id and text are required")
	}
	return req, nil
}

// render returns the document bytes and page count, consulting the cache.
func (s *Server) render(r *http.Request, text string, format builder.Format) ([]byte, int, error) {
	ctx := r.Context()
	key := cache.Key(s.builder.Fingerprint(), string(format), text)
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("cache get failed", observability.Error("error", err))
		}
		if ok {
			if rep, err := builder.Verify(data); err == nil {
				return data, rep.Pages, nil
			}
			s.log.Warn("discarding corrupt cache entry", observability.String("key", key))
		}
	}

	doc, err := s.builder.BuildFormat(text, format)
	if err != nil {
		return nil, 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, doc.Bytes, s.ttl); err != nil {
			s.log.Warn("cache set failed", observability.Error("error", err))
		}
	}
	return doc.Bytes, doc.Pages, nil
}

// filename is notice_<first 8 chars of the case id>_<unix millis>.pdf.
func (s *Server) filename(caseID string) string {
	short := []rune(caseID)
	if len(short) > 8 {
		short = short[:8]
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, string(short))
	return fmt.Sprintf("notice_%s_%d.pdf", safe, s.now().UnixMilli())
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		c := strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if c == "*" || c == etag {
			return true
		}
	}
	return false
}
