// Package templates renders the web UI as templ components.
//
// Markup lives in embedded html/template files; each exported constructor
// binds one named template to its view so handlers compose pages with the
// usual templ.Component and templ.WithChildren contracts.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed html/*.gohtml
var htmlFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"t": func(loc Localizer, key string, args ...any) string {
		return T(loc, key, args...)
	},
}).ParseFS(htmlFS, "html/*.gohtml"))

// named returns a component rendering the named template with data.
func named(name string, data any) templ.Component {
	tmpl := pages.Lookup(name)
	if tmpl == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("template %q is not defined", name)
		})
	}
	return templ.FromGoHTML(tmpl, data)
}

// Render writes c to w with ctx, for callers outside an HTTP handler.
func Render(ctx context.Context, w io.Writer, c templ.Component) error {
	if c == nil {
		return nil
	}
	return c.Render(ctx, w)
}
