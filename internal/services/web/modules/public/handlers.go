package public

import (
	"io"
	"net/http"

	module "github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/platform/modulehandler"
	"github.com/sufni/dashboard/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
	checks []module.HealthReporter
}

func newHandlers(checks []module.HealthReporter, resolvers module.Resolvers) handlers {
	return handlers{Base: modulehandler.NewBase(resolvers), checks: checks}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.DashboardPrefix, http.StatusFound)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if !h.healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (h handlers) healthy() bool {
	for _, check := range h.checks {
		if check != nil && !check.Healthy() {
			return false
		}
	}
	return true
}
