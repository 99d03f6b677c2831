// Package sessionapi serves the JSON session and board API used by
// importers and scripts.
package sessionapi

import (
	"net/http"
	"time"

	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/routepath"
)

// Dependencies carries what the API module needs at mount time.
type Dependencies struct {
	Sessions SessionGateway
	Boards   BoardGateway
	// Tokens are the accepted X-Token values for session import.
	Tokens    []string
	Resolvers module.Resolvers
	// Now stamps imports that carry no timestamp; nil means time.Now.
	Now func() time.Time
}

// Module provides /api routes.
type Module struct {
	deps Dependencies
}

// New returns a session API module.
func New(deps Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "sessionapi" }

// Mount wires API route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	s := newService(m.deps.Sessions, m.deps.Now)
	boards := newBoardService(m.deps.Boards)
	registerRoutes(mux, newHandlers(s, boards, newTokenSet(m.deps.Tokens), m.deps.Resolvers))
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}
