// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	flashnotice "github.com/louisbranch/charactercatalog/internal/services/web/platform/flash"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/charactercatalog/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/charactercatalog/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared app-shell rendering contracts.
// HTMX requests receive the fragment alone; full requests get the layout and
// consume any pending flash notice.
func WriteModulePage(w http.ResponseWriter, r *http.Request, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	loc, lang := webi18n.ResolveLocalizer(w, r)
	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		flush(w, statusCode, &buf)
		return nil
	}

	layout := webtemplates.AppLayout(webtemplates.LayoutOptions{
		Title:     page.Title,
		Lang:      lang,
		Loc:       loc,
		Languages: webi18n.LanguageOptions(r, lang, loc),
		Toast:     resolveFlashToast(w, r, loc),
	})
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	flush(w, statusCode, &buf)
	return nil
}

func flush(w http.ResponseWriter, statusCode int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	message := strings.TrimSpace(webi18n.T(loc, notice.Key, args...))
	if message == "" {
		message = strings.TrimSpace(notice.Key)
	}
	if message == "" {
		return nil
	}
	return &webtemplates.AppToast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
