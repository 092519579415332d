package templates

import (
	webi18n "github.com/louisbranch/charactercatalog/internal/services/web/platform/i18n"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for web components.
type Localizer = webi18n.Localizer

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	return webi18n.T(loc, key, args...)
}
