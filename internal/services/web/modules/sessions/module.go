// Package sessions serves the dashboard session list, session detail pages
// and live list-change notifications.
package sessions

import (
	"net/http"
	"time"

	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/routepath"
)

// Dependencies carries what the sessions module needs at mount time.
type Dependencies struct {
	Sessions  SessionGateway
	Resolvers module.Resolvers
	// Location renders session timestamps; nil means UTC.
	Location *time.Location
}

// Module provides dashboard session routes.
type Module struct {
	deps Dependencies
}

// New returns a sessions module.
func New(deps Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "sessions" }

// Healthy reports whether a session store backs the module.
func (m Module) Healthy() bool { return m.deps.Sessions != nil }

// Mount wires session route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps.Sessions), m.deps.Resolvers, m.deps.Location))
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
