// Package modules defines web module registry helpers.
package modules

import (
	"time"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
	module "github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/modules/auth"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the shared services required to compose the web
// module registry. Request-scoped resolvers are passed separately since the
// server derives them from the access token manager.
type Dependencies struct {
	// Sessions is the process-wide session model; nil leaves session routes
	// answering unavailable.
	Sessions *model.Model
	// Location renders session timestamps.
	Location *time.Location

	// Users holds operator accounts; nil leaves sign-in unavailable.
	Users storage.UserStore
	// Boards maps DAQ boards to setups; nil leaves /api/board unavailable.
	Boards storage.BoardStore
	Tokens auth.TokenIssuer
	// APITokens are accepted X-Token values for session import.
	APITokens []string
	// PasswordHashCost is the bcrypt cost for changed passwords.
	PasswordHashCost int
}
