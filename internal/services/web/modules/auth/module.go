// Package auth serves the login and logout routes that issue and clear the
// access cookie, plus the signed-in account and password change endpoints.
package auth

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/routepath"
)

// Dependencies carries what the auth module needs at mount time.
type Dependencies struct {
	Users     UserGateway
	Tokens    TokenIssuer
	Resolvers module.Resolvers
	// HashCost is the bcrypt cost for changed passwords; zero means
	// bcrypt.DefaultCost.
	HashCost int
}

// Module provides login/logout routes.
type Module struct {
	deps Dependencies
}

// New returns an auth module.
func New(deps Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Healthy reports whether sign-in can succeed at all.
func (m Module) Healthy() bool {
	return m.deps.Tokens != nil && m.deps.Users != nil
}

// Mount wires auth route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps.Users, m.deps.Tokens, m.deps.HashCost), m.deps.Resolvers))
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: mux}, nil
}
