// Package httpx provides HTTP middleware and response helpers used by web modules.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"go.uber.org/zap"
)

const (
	requestIDHeader    = "X-Request-ID"
	htmxHeader         = "HX-Request"
	htmxRedirectHeader = "HX-Redirect"
	htmxTargetHeader   = "HX-Target"
	htmxRetargetHeader = "HX-Retarget"
	htmxReswapHeader   = "HX-Reswap"
)

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// MethodNotAllowed writes a 405 response with an Allow header.
func MethodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if w == nil {
			return
		}
		w.Header().Set("Allow", strings.TrimSpace(allow))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// RequestID injects and echoes a request id for correlation.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if requestID == "" {
				requestID = "web-" + uuid.NewString()
				r.Header.Set(requestIDHeader, requestID)
			}
			w.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDFrom returns the correlation id set by RequestID, or "-".
func RequestIDFrom(r *http.Request) string {
	if r == nil {
		return "-"
	}
	if rid := strings.TrimSpace(r.Header.Get(requestIDHeader)); rid != "" {
		return rid
	}
	return "-"
}

// RecoverPanic converts panics into HTTP 500 responses.
func RecoverPanic(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					path := "-"
					method := "-"
					if r != nil {
						path = strings.TrimSpace(r.URL.Path)
						method = strings.TrimSpace(r.Method)
					}
					logger.Error("panic recovered",
						zap.String("method", method),
						zap.String("path", path),
						zap.String("request_id", RequestIDFrom(r)),
						zap.Any("panic", recovered),
						zap.String("stack", strings.TrimSpace(string(debug.Stack()))),
					)
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSameOrigin rejects mutating requests that carry a session cookie but
// lack an Origin or Referer proving they came from this site.
func RequireSameOrigin(policy requestmeta.SchemePolicy, hasSession func(*http.Request) bool) Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || hasSession == nil || !hasSession(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProofWithPolicy(r, policy) {
				WriteError(w, apperrors.E(apperrors.KindForbidden, "cross-origin request rejected"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// WriteError writes a plain-text error response using typed web status mapping.
func WriteError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	http.Error(w, http.StatusText(statusCode), statusCode)
}

// RequestContext returns r.Context() with a nil-safe fallback to context.Background().
func RequestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

// IsHTMXRequest reports whether the current request came from HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return r.Header.Get(htmxHeader) == "true"
}

// HTMXTarget returns the id of the element HTMX will swap, without the "#".
func HTMXTarget(r *http.Request) string {
	if !IsHTMXRequest(r) {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(r.Header.Get(htmxTargetHeader)), "#")
}

// WriteHTML writes an HTML payload with the provided status code.
func WriteHTML(w http.ResponseWriter, status int, payload string) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, payload)
	return err
}

// WriteHXRedirect writes an HTMX redirect response header.
func WriteHXRedirect(w http.ResponseWriter, location string) {
	if w == nil {
		return
	}
	w.Header().Set(htmxRedirectHeader, location)
	w.WriteHeader(http.StatusOK)
}

// SetHXRetarget redirects the HTMX swap of this response to target using the
// given swap strategy.
func SetHXRetarget(w http.ResponseWriter, target string, swap string) {
	if w == nil {
		return
	}
	w.Header().Set(htmxRetargetHeader, target)
	if swap = strings.TrimSpace(swap); swap != "" {
		w.Header().Set(htmxReswapHeader, swap)
	}
}

// WriteRedirect writes an HTMX-aware redirect response.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	if w == nil {
		return
	}
	if IsHTMXRequest(r) {
		WriteHXRedirect(w, location)
		return
	}
	if r == nil {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
