package modules

import (
	"time"

	module "github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/modules/auth"
	"github.com/sufni/dashboard/internal/services/web/modules/public"
	"github.com/sufni/dashboard/internal/services/web/modules/sessionapi"
	"github.com/sufni/dashboard/internal/services/web/modules/sessions"
)

// DefaultModules returns every web module in mount order. The public module
// owns the root prefix and health-checks the others.
func DefaultModules(deps Dependencies, resolvers module.Resolvers) []Module {
	sessionsModule := sessions.New(sessions.Dependencies{
		Sessions:  sessionGateway(deps),
		Resolvers: resolvers,
		Location:  deps.Location,
	})
	authModule := auth.New(auth.Dependencies{
		Users:     deps.Users,
		Tokens:    deps.Tokens,
		Resolvers: resolvers,
		HashCost:  deps.PasswordHashCost,
	})
	apiModule := sessionapi.New(sessionapi.Dependencies{
		Sessions:  apiGateway(deps),
		Boards:    deps.Boards,
		Tokens:    deps.APITokens,
		Resolvers: resolvers,
		Now:       time.Now,
	})
	return []Module{
		public.New(public.Dependencies{
			Checks:    []module.HealthReporter{sessionsModule},
			Resolvers: resolvers,
		}),
		sessionsModule,
		authModule,
		apiModule,
	}
}

// sessionGateway keeps a nil model from becoming a non-nil interface.
func sessionGateway(deps Dependencies) sessions.SessionGateway {
	if deps.Sessions == nil {
		return nil
	}
	return deps.Sessions
}

func apiGateway(deps Dependencies) sessionapi.SessionGateway {
	if deps.Sessions == nil {
		return nil
	}
	return deps.Sessions
}
