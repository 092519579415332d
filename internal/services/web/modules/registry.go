package modules

import (
	module "github.com/louisbranch/charactercatalog/internal/services/web/module"
	"github.com/louisbranch/charactercatalog/internal/services/web/modules/characters"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/modulehandler"
)

// DefaultModules returns the stable web modules.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		characters.NewWithConfig(characters.Config{
			Gateway:             deps.CharacterGateway,
			SessionTTL:          deps.SessionTTL,
			MaxSessions:         deps.MaxSessions,
			SearchDebounce:      deps.SearchDebounce,
			RelatedConcurrency:  deps.RelatedConcurrency,
			RequestSchemePolicy: deps.RequestSchemePolicy,
		}, modulehandler.NewBase(deps.Logger)),
	}
}

// Unhealthy returns the ids of modules that report a degraded gateway.
// Modules that do not report health are assumed healthy.
func Unhealthy(all []Module) []string {
	var ids []string
	for _, feature := range all {
		reporter, ok := feature.(module.HealthReporter)
		if ok && !reporter.Healthy() {
			ids = append(ids, feature.ID())
		}
	}
	return ids
}
