package app

import (
	"errors"
	"net/http"
)

var errNoModules = errors.New("at least one module is required")

// BuildRootHandler composes a root mux from the configured modules.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	if len(cfg.Modules) == 0 {
		return nil, errNoModules
	}
	return Compose(ComposeInput{
		Modules:             cfg.Modules,
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
}
