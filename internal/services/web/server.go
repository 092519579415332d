// Package web hosts the browser-facing character catalog service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/charactercatalog/internal/platform/logging"
	"github.com/louisbranch/charactercatalog/internal/platform/timeouts"
	webapp "github.com/louisbranch/charactercatalog/internal/services/web/app"
	module "github.com/louisbranch/charactercatalog/internal/services/web/module"
	"github.com/louisbranch/charactercatalog/internal/services/web/modules"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/observability"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/charactercatalog/internal/services/web/routepath"
	webstatic "github.com/louisbranch/charactercatalog/internal/services/web/static"
	"go.uber.org/zap"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// Modules are the feature modules to mount. Callers build them with
	// modules.DefaultModules so gateways are constructed outside the server.
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	Logger              *zap.Logger
	// AccessLog receives one line per request. Defaults to a std logger
	// backed by Logger.
	AccessLog *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler: static assets, health, the root
// redirect, and the composed feature modules.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	accessLog := cfg.AccessLog
	if accessLog == nil {
		accessLog = logging.StdLogger(logger.Named("access"))
	}

	h, err := webapp.BuildRootHandler(webapp.Config{
		Modules:             cfg.Modules,
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.HandleFunc("GET "+routepath.Health, healthHandler(cfg.Modules))
	rootMux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routepath.Characters, http.StatusFound)
	})
	rootMux.Handle("/", h)

	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(accessLog),
	), nil
}

// healthHandler reports 503 while any module runs degraded.
func healthHandler(all []module.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if unhealthy := modules.Unhealthy(all); len(unhealthy) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "degraded: %s\n", strings.Join(unhealthy, ","))
			return
		}
		_, _ = w.Write([]byte("ok\n"))
	}
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          logging.StdLogger(logger.Named("http")),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", zap.String("addr", s.httpAddr))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("web shutting down", zap.Duration("timeout", timeouts.Shutdown))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
