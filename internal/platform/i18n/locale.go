// Package i18n defines the supported UI locales.
package i18n

import (
	"strings"

	"github.com/louisbranch/charactercatalog/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var (
	englishUS     = language.MustParse(catalog.BaseLocale)
	portugueseBR  = language.MustParse("pt-BR")
	supportedTags = []language.Tag{englishUS, portugueseBR}
	matcher       = language.NewMatcher(supportedTags)
)

// DefaultTag returns the fallback UI language.
func DefaultTag() language.Tag {
	return englishUS
}

// SupportedTags returns the UI languages with a message catalog.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// ParseTag parses value and maps it to a supported tag. It reports false for
// blank or malformed values and for languages with no supported match.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return supportedBase(matched), true
}

// MatchTags picks the best supported tag for an Accept-Language preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, _ := matcher.Match(tags...)
	return supportedBase(matched)
}

// supportedBase strips matcher extensions such as "-u-rg-..." so callers get
// one of the catalog tags exactly.
func supportedBase(tag language.Tag) language.Tag {
	for _, supported := range supportedTags {
		if tag == supported {
			return supported
		}
	}
	_, index, _ := matcher.Match(tag)
	if index >= 0 && index < len(supportedTags) {
		return supportedTags[index]
	}
	return DefaultTag()
}
