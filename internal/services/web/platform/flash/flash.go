// Package flash carries one-time notices across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
)

// CookieName is the cookie used for one-time notices.
const CookieName = "catalog_flash"

// maxArgs bounds the message arguments kept in the cookie.
const maxArgs = 4

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is a localization key plus its message arguments.
type Notice struct {
	Kind Kind     `json:"kind"`
	Key  string   `json:"key"`
	Args []string `json:"args,omitempty"`
}

// Success builds a success notice.
func Success(key string, args ...string) Notice {
	return Notice{Kind: KindSuccess, Key: key, Args: args}
}

// Warning builds a warning notice.
func Warning(key string, args ...string) Notice {
	return Notice{Kind: KindWarning, Key: key, Args: args}
}

// Write stores notice for the next page render.
func Write(w http.ResponseWriter, r *http.Request, notice Notice) {
	WriteWithPolicy(w, r, notice, requestmeta.SchemePolicy{})
}

// WriteWithPolicy stores notice for the next page render.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	setCookie(w, r, policy, base64.RawURLEncoding.EncodeToString(payload), 0)
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		Clear(w, r)
	}
	return decode(cookie.Value)
}

// Clear expires any pending notice.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	setCookie(w, r, requestmeta.SchemePolicy{}, "", -1)
}

func setCookie(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	if notice.Key == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
	default:
		return Notice{}, false
	}
	if len(notice.Args) > maxArgs {
		notice.Args = notice.Args[:maxArgs]
	}
	if len(notice.Args) == 0 {
		notice.Args = nil
	}
	return notice, true
}
