package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/charactercatalog/internal/services/web/platform/i18n"
)

// DefaultAppName is the product name shown in the page chrome.
const DefaultAppName = "Character Catalog"

// AppToast is a one-time notice rendered at the top of the page.
type AppToast struct {
	Kind    string
	Message string
}

// LayoutOptions configures the full-page shell.
type LayoutOptions struct {
	Title     string
	Lang      string
	AppName   string
	Loc       Localizer
	Languages []webi18n.LanguageOption
	Toast     *AppToast
}

type layoutView struct {
	LayoutOptions
	Main template.HTML
}

// AppLayout renders the page shell around its templ children.
func AppLayout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		main, err := templ.ToGoHTML(templ.ClearChildren(ctx), children)
		if err != nil {
			return err
		}
		if opts.AppName == "" {
			opts.AppName = DefaultAppName
		}
		return named("layout", layoutView{LayoutOptions: opts, Main: main}).Render(ctx, w)
	})
}
