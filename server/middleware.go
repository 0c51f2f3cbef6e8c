package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/time/rate"

	"github.com/wudi/noticepdf/observability"
)

// Wrapper decorates a handler.
type Wrapper func(http.Handler) http.Handler

func chain(h http.Handler, wrappers ...Wrapper) http.Handler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		h = wrappers[i](h)
	}
	return h
}

func recoverWrapper(log observability.Logger) Wrapper {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						observability.String("panic", fmt.Sprint(rec)),
						observability.String("stack", string(debug.Stack())))
					writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error", log)
				}
			}()
			inner.ServeHTTP(w, r)
		})
	}
}

// rateLimitWrapper rejects requests beyond the token bucket with 429.
func rateLimitWrapper(limiter *rate.Limiter, log observability.Logger) Wrapper {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter != nil && !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded", log)
				return
			}
			inner.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func accessLogWrapper(log observability.Logger) Wrapper {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			inner.ServeHTTP(rec, r)
			log.Info("request",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.Int("status", rec.status),
				observability.Int("bytes", rec.bytes),
				observability.Duration("elapsed", time.Since(start)))
		})
	}
}
