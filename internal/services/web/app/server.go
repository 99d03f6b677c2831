package app

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/platform/httpx"
)

// BuildRootHandler composes the configured modules and wraps them in the
// shared request middleware.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	handler, err := Compose(ComposeInput{Modules: cfg.Modules, Static: cfg.Static})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(handler,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.LogRequests(),
	), nil
}
