// Package web parses web service flags and launches the catalog web server.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/charactercatalog/internal/platform/cmd"
	"github.com/louisbranch/charactercatalog/internal/platform/logging"
	"github.com/louisbranch/charactercatalog/internal/services/web"
	"github.com/louisbranch/charactercatalog/internal/services/web/modules"
	"github.com/louisbranch/charactercatalog/internal/services/web/modules/characters"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"go.uber.org/zap"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"CATALOG_WEB_HTTP_ADDR" envDefault:"localhost:8086"`
	UpstreamBaseURL     string        `env:"CATALOG_UPSTREAM_BASE_URL" envDefault:"https://swapi.dev/api"`
	UpstreamTimeout     time.Duration `env:"CATALOG_UPSTREAM_TIMEOUT" envDefault:"10s"`
	SearchDebounce      time.Duration `env:"CATALOG_SEARCH_DEBOUNCE" envDefault:"300ms"`
	SessionTTL          time.Duration `env:"CATALOG_SESSION_TTL" envDefault:"30m"`
	MaxSessions         int           `env:"CATALOG_SESSION_MAX" envDefault:"10000"`
	RelatedConcurrency  int           `env:"CATALOG_RELATED_CONCURRENCY" envDefault:"4"`
	LogLevel            string        `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"CATALOG_LOG_FORMAT" envDefault:"console"`
	TrustForwardedProto bool          `env:"CATALOG_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.UpstreamBaseURL, "upstream-base-url", cfg.UpstreamBaseURL, "Catalog API base URL")
	fs.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", cfg.UpstreamTimeout, "Timeout for each catalog API request")
	fs.DurationVar(&cfg.SearchDebounce, "search-debounce", cfg.SearchDebounce, "Quiet period before a search request is sent")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle lifetime of a browsing session")
	fs.IntVar(&cfg.MaxSessions, "session-max", cfg.MaxSessions, "Maximum live browsing sessions before the least recently used is evicted")
	fs.IntVar(&cfg.RelatedConcurrency, "related-concurrency", cfg.RelatedConcurrency, "Concurrent related-record fetches per detail view")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console, json)")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when resolving the request scheme")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.MaxSessions < 1 {
		return Config{}, fmt.Errorf("session max must be at least 1, got %d", cfg.MaxSessions)
	}
	if cfg.RelatedConcurrency < 1 {
		return Config{}, fmt.Errorf("related concurrency must be at least 1, got %d", cfg.RelatedConcurrency)
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.RedirectStdLog(logger.Named("std"))
	defer undo()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := newServer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func newServer(ctx context.Context, cfg Config, logger *zap.Logger) (*web.Server, error) {
	gateway, err := characters.NewHTTPGateway(characters.GatewayConfig{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init catalog gateway: %w", err)
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Modules: modules.DefaultModules(modules.Dependencies{
			CharacterGateway:    gateway,
			Logger:              logger,
			SessionTTL:          cfg.SessionTTL,
			MaxSessions:         cfg.MaxSessions,
			SearchDebounce:      cfg.SearchDebounce,
			RelatedConcurrency:  cfg.RelatedConcurrency,
			RequestSchemePolicy: policy,
		}),
		RequestSchemePolicy: policy,
		Logger:              logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init web server: %w", err)
	}
	return server, nil
}
