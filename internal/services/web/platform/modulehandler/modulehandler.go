// Package modulehandler provides a composable base for web module handlers.
//
// HTML modules share handler infrastructure for viewer resolution,
// localization, page rendering and error handling. Modules embed Base rather
// than duplicating that scaffold.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	webi18n "github.com/sufni/dashboard/internal/services/web/i18n"
	module "github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/platform/pagerender"
	"github.com/sufni/dashboard/internal/services/web/platform/weberror"
)

// Base carries the request-scoped resolvers used by module handlers.
type Base struct {
	resolvers module.Resolvers
}

// NewBase builds a handler base from module resolvers.
func NewBase(resolvers module.Resolvers) Base {
	return Base{resolvers: resolvers}
}

// ResolveRequestViewer resolves the viewer for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	return b.resolvers.ResolveRequestViewer(r)
}

// ResolveRequestLanguage returns the effective request language.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	return b.resolvers.ResolveRequestLanguage(r)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	return webi18n.ResolveLocalizer(w, r, b.resolvers.ResolveRequestLanguage)
}

// Localizer resolves only the request localizer.
func (b Base) Localizer(w http.ResponseWriter, r *http.Request) *message.Printer {
	loc, _ := b.PageLocalizer(w, r)
	return loc
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, "", b)
}

// WritePage renders a full module page (htmx-aware), falling back to the
// error page when rendering fails.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, b, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteFragment renders a bare component, falling back to the error page
// when rendering fails.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) {
	if err := pagerender.WriteFragment(w, r, statusCode, component); err != nil {
		b.WriteError(w, r, err)
	}
}
