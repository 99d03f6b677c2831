// Package public serves the root redirect, the health check and the
// not-found page for paths no other module owns.
package public

import (
	"net/http"

	module "github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/routepath"
)

// Dependencies carries what the public module needs at mount time.
type Dependencies struct {
	// Checks must all report healthy for the health check to pass.
	Checks    []module.HealthReporter
	Resolvers module.Resolvers
}

// Module provides unauthenticated root routes.
type Module struct {
	deps Dependencies
}

// New returns a public module.
func New(deps Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps.Checks, m.deps.Resolvers))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
