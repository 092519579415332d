// Package modules defines web module registry helpers.
package modules

import (
	"time"

	module "github.com/louisbranch/charactercatalog/internal/services/web/module"
	"github.com/louisbranch/charactercatalog/internal/services/web/modules/characters"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"go.uber.org/zap"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the gateways and shared config required to compose
// the web module registry. Gateways are built by the caller so modules never
// dial upstream services on their own.
type Dependencies struct {
	// CharacterGateway serves the characters module. Nil runs the module in
	// degraded mode.
	CharacterGateway characters.CharacterGateway

	Logger              *zap.Logger
	SessionTTL          time.Duration
	MaxSessions         int
	SearchDebounce      time.Duration
	RelatedConcurrency  int
	RequestSchemePolicy requestmeta.SchemePolicy
}
