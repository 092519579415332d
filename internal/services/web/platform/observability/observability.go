// Package observability provides the web access log middleware.
package observability

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
)

// RequestLogger writes one access line per request to logger.
func RequestLogger(logger *log.Logger) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			logger.Printf("method=%s path=%s status=%d bytes=%d latency=%s request_id=%s",
				r.Method,
				requestPath(r),
				rec.statusCode(),
				rec.bytes,
				time.Since(started).Round(time.Microsecond),
				httpx.RequestIDFrom(r),
			)
		})
	}
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return "-"
	}
	if path := strings.TrimSpace(r.URL.Path); path != "" {
		return path
	}
	return "/"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
