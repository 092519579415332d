// Package module defines the contract between feature modules and the root
// handler composition.
package module

import "net/http"

// Mount is the subtree a module serves. Prefix must end in "/"; composition
// also routes the slashless form to Handler.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is a mountable feature.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is implemented by modules that depend on an upstream
// gateway. Healthy reports false while the module runs without one, which
// the /up endpoint surfaces as 503.
type HealthReporter interface {
	Healthy() bool
}
