package characters

import (
	"net/http"
	"time"

	"github.com/louisbranch/charactercatalog/internal/services/web/module"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/charactercatalog/internal/services/web/routepath"
)

// DefaultSearchDebounce is the idle time after the last keystroke before the
// browser sends a search.
const DefaultSearchDebounce = 300 * time.Millisecond

// Config carries the character module dependencies and tuning.
type Config struct {
	Gateway             CharacterGateway
	SessionTTL          time.Duration
	MaxSessions         int
	SearchDebounce      time.Duration
	RelatedConcurrency  int
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Module provides the character catalog routes.
type Module struct {
	cfg      Config
	sessions *Store
	base     modulehandler.Base
}

// New returns a characters module with zero-value dependencies (degraded mode).
func New() Module {
	return NewWithConfig(Config{}, modulehandler.NewTestBase())
}

// NewWithConfig returns a characters module with explicit gateway and handler
// dependencies. Sessions live for as long as the module value.
func NewWithConfig(cfg Config, base modulehandler.Base) Module {
	if cfg.Gateway == nil {
		cfg.Gateway = unavailableGateway{}
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = DefaultSearchDebounce
	}
	return Module{cfg: cfg, sessions: NewStore(cfg.SessionTTL, cfg.MaxSessions, base.Logger()), base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "characters" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool {
	if m.cfg.Gateway == nil {
		return false
	}
	_, unavailable := m.cfg.Gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires character route handlers.
func (m Module) Mount() (module.Mount, error) {
	sessions := m.sessions
	if sessions == nil {
		sessions = NewStore(m.cfg.SessionTTL, m.cfg.MaxSessions, m.base.Logger())
	}
	mux := http.NewServeMux()
	svc := newService(m.cfg.Gateway, m.cfg.RelatedConcurrency, m.base.Logger())
	h := newHandlers(svc, sessions, m.cfg.SearchDebounce, m.cfg.RequestSchemePolicy, m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.CharactersPrefix, Handler: mux}, nil
}
