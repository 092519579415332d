// Package i18n resolves the request language and localizer for web pages.
package i18n

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/charactercatalog/internal/platform/i18n"
	_ "github.com/louisbranch/charactercatalog/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "catalog_lang"
)

// Localizer provides translated strings for web components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag determines the best language tag for the request: the lang
// query parameter, then the language cookie, then Accept-Language. The bool
// reports whether the tag came from the query and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if r.URL != nil {
		if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer resolves the request language, persists an explicit
// choice, and returns a localizer plus the language tag string.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (Localizer, string) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag.String()
}

// LanguageOptions builds the language switcher entries for the current URL.
func LanguageOptions(r *http.Request, active string, loc Localizer) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	supported := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  T(loc, "core.language."+tag.String()),
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag.String() == active,
		})
	}
	return options
}

// LanguageURL returns path with the language parameter set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
