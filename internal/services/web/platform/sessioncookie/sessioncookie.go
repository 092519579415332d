// Package sessioncookie centralizes the anonymous browser session cookie.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
)

// Name is the session cookie name.
const Name = "catalog_session"

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the session cookie. A positive ttl bounds the cookie lifetime;
// zero makes it a browser-session cookie.
func Write(w http.ResponseWriter, r *http.Request, sessionID string, ttl time.Duration) {
	WriteWithPolicy(w, r, sessionID, ttl, requestmeta.SchemePolicy{})
}

// WriteWithPolicy sets the session cookie under policy.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, sessionID string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	maxAge := 0
	if ttl > 0 {
		maxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(sessionID),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}
