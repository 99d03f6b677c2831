// Package weberror renders shared error responses for web modules.
package weberror

import (
	"log"
	"net/http"
	"strings"

	webi18n "github.com/sufni/dashboard/internal/services/web/i18n"
	"github.com/sufni/dashboard/internal/services/web/module"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/pagerender"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webtemplates.TF(loc, key, "")); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusNotFound {
		return webtemplates.ErrorMessage(statusCode, loc)
	}
	return apperrors.PublicMessage(err)
}

// WriteAppError writes a localized error page for full-page and htmx requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, message string, resolver module.RequestResolver) {
	if w == nil {
		return
	}
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	var resolveLanguage func(*http.Request) string
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	err := pagerender.WritePage(w, r, resolver, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(loc),
		StatusCode: statusCode,
		Content:    webtemplates.ErrorState(statusCode, message, loc),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError maps err to a status and writes the error page.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, resolver module.RequestResolver) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		log.Printf("web request failed method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
	var resolveLanguage func(*http.Request) string
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	WriteAppError(w, r, statusCode, PublicMessage(loc, err), resolver)
}
