// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	webi18n "github.com/sufni/dashboard/internal/services/web/i18n"
	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/platform/flash"
	"github.com/sufni/dashboard/internal/services/web/platform/httpx"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

// Page describes a module page response for both full-page and htmx flows.
type Page struct {
	Title      string
	StatusCode int
	// Drawer renders inside the navigation drawer on full-page loads.
	Drawer templ.Component
	// Content renders in the main column; htmx requests receive only this.
	Content templ.Component
}

// WritePage renders page as a full document or, for htmx requests, as the
// bare main-column fragment.
func WritePage(w http.ResponseWriter, r *http.Request, resolver module.RequestResolver, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	content := page.Content
	if content == nil {
		content = templ.NopComponent
	}
	if resolver == nil {
		resolver = module.Resolvers{}
	}
	ctx := httpx.RequestContext(r)

	if httpx.IsHTMXRequest(r) {
		return WriteFragment(w, r, statusCode, content)
	}

	loc, lang := webi18n.ResolveLocalizer(w, r, resolver.ResolveRequestLanguage)
	pageContext := webtemplates.PageContext{
		Title:  page.Title,
		Lang:   lang,
		Loc:    loc,
		Viewer: resolver.ResolveRequestViewer(r),
		Toast:  resolveToast(w, r, loc),
	}
	if r != nil && r.URL != nil {
		pageContext.CurrentPath = r.URL.Path
		pageContext.CurrentQuery = r.URL.RawQuery
	}

	var buf bytes.Buffer
	layout := webtemplates.Layout(pageContext, page.Drawer)
	if err := layout.Render(templ.WithChildren(ctx, content), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// WriteFragment renders component alone, buffering so a render error can
// still become an error response.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	if w == nil {
		return nil
	}
	if component == nil {
		component = templ.NopComponent
	}
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveToast(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer) *webtemplates.Toast {
	notice, ok := flash.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.TF(loc, notice.Key, notice.Key))
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{Kind: string(notice.Kind), Message: message}
}
