package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/sufni/dashboard/internal/services/web/routepath"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(loc Localizer) string {
	return TF(loc, "error.title", "Error")
}

// ErrorMessage returns the default message for statusCode.
func ErrorMessage(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return TF(loc, "error.not_found", "The page you requested was not found.")
	case http.StatusForbidden, http.StatusUnauthorized:
		return TF(loc, "error.forbidden", "Full access is required for this action.")
	case http.StatusServiceUnavailable:
		return TF(loc, "error.unavailable", "The session store is unavailable.")
	default:
		return TF(loc, "error.internal", "Something went wrong.")
	}
}

// ErrorState renders the main-column body of an error page.
func ErrorState(statusCode int, message string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if message == "" {
			message = ErrorMessage(statusCode, loc)
		}
		hw := NewWriter(w)
		hw.Raw(`<section class="error-state"`).Attr("data-status", http.StatusText(statusCode)).Raw(`><h1>`)
		hw.Text(ErrorPageTitle(loc)).Raw(`</h1><p>`).Text(message).Raw(`</p>`)
		hw.Raw(`<a`).Attr("href", routepath.DashboardPrefix).Raw(`>`)
		hw.Text(TF(loc, "nav.sessions", "Sessions")).Raw(`</a></section>`)
		return hw.Err()
	})
}
