package templates

import (
	"net/http"

	"github.com/a-h/templ"
)

const (
	appErrorPageTitleNotFoundKey    = "web.error.page_title_not_found"
	appErrorPageTitleServerErrKey   = "web.error.page_title_server_error"
	appErrorPageTitleUnavailableKey = "web.error.page_title_unavailable"
	appErrorMessageNotFoundKey      = "web.error.message_not_found"
	appErrorMessageServerErrKey     = "web.error.message_server_error"
	appErrorMessageUnavailableKey   = "web.error.message_unavailable"
)

type appErrorView struct {
	Loc        Localizer
	StatusCode int
	Heading    string
	Message    string
	BackURL    string
}

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	switch normalizeAppErrorStatus(statusCode) {
	case http.StatusNotFound:
		return T(loc, appErrorPageTitleNotFoundKey)
	case http.StatusServiceUnavailable:
		return T(loc, appErrorPageTitleUnavailableKey)
	default:
		return T(loc, appErrorPageTitleServerErrKey)
	}
}

// AppErrorState renders the error body shown inside the page shell.
func AppErrorState(statusCode int, backURL string, loc Localizer) templ.Component {
	statusCode = normalizeAppErrorStatus(statusCode)
	view := appErrorView{
		Loc:        loc,
		StatusCode: statusCode,
		Heading:    AppErrorPageTitle(statusCode, loc),
		BackURL:    backURL,
	}
	switch statusCode {
	case http.StatusNotFound:
		view.Message = T(loc, appErrorMessageNotFoundKey)
	case http.StatusServiceUnavailable:
		view.Message = T(loc, appErrorMessageUnavailableKey)
	default:
		view.Message = T(loc, appErrorMessageServerErrKey)
	}
	return named("app_error", view)
}

func normalizeAppErrorStatus(statusCode int) int {
	switch statusCode {
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return statusCode
	default:
		return http.StatusInternalServerError
	}
}
