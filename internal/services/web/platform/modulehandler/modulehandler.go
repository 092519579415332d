// Package modulehandler provides a composable base for web module handlers.
//
// Modules share common handler infrastructure for localization, page
// rendering, and error handling. This package extracts that shared scaffold
// so modules embed it rather than duplicating it.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/charactercatalog/internal/services/web/platform/i18n"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/pagerender"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/charactercatalog/internal/services/web/templates"
	"go.uber.org/zap"
)

// Base carries the shared request-scoped helpers used by module handlers.
// Embed this in module handler structs to get standard localization, page
// rendering, and error writing without duplicating boilerplate.
type Base struct {
	logger *zap.Logger
}

// NewBase builds a handler base that reports server-side failures to logger.
func NewBase(logger *zap.Logger) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{logger: logger}
}

// NewTestBase builds a handler base that discards diagnostics.
func NewTestBase() Base {
	return NewBase(nil)
}

// Logger returns the diagnostic logger, never nil.
func (b Base) Logger() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r)
}

// WriteError renders a localized module error response. Server-side
// failures are logged with the request id.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		b.Logger().Error("request failed",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.String("path", requestPath(r)),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	weberror.WriteModuleError(w, r, err)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}

// WritePage renders a module page (HTMX-aware) with the given title and
// content fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
