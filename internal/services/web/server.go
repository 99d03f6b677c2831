package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/sufni/dashboard/internal/platform/timeouts"
	"github.com/sufni/dashboard/internal/services/web/app"
	module "github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/modules"
	"github.com/sufni/dashboard/internal/services/web/platform/accesstoken"
	"github.com/sufni/dashboard/internal/services/web/static"
)

// Config defines the inputs for the dashboard server.
type Config struct {
	HTTPAddr string
	// Modules carries the session model and sign-in settings. Its Tokens
	// field defaults to AccessTokens.
	Modules modules.Dependencies
	// AccessTokens verifies the access cookie on every request; nil makes
	// every visitor anonymous.
	AccessTokens *accesstoken.Manager
}

// Server hosts the dashboard HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	// cancelBase ends the base context shared by every request, which is
	// what stops hijacked websocket streams.
	cancelBase context.CancelFunc
}

// NewHandler builds the dashboard root handler.
func NewHandler(config Config) (http.Handler, error) {
	deps := config.Modules
	resolvers := module.Resolvers{}
	if config.AccessTokens != nil {
		if deps.Tokens == nil {
			deps.Tokens = config.AccessTokens
		}
		resolvers.Viewer = config.AccessTokens.ResolveViewer
	}
	return app.BuildRootHandler(app.Config{
		Modules: modules.DefaultModules(deps, resolvers),
		Static:  static.FS,
	})
}

// NewServer builds a configured dashboard server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}

	baseCtx, cancelBase := context.WithCancel(context.WithoutCancel(ctx))
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		cancelBase: cancelBase,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web dashboard listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.cancelBase()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close ends open request streams. It is safe to call after shutdown.
func (s *Server) Close() {
	if s == nil || s.cancelBase == nil {
		return
	}
	s.cancelBase()
}
