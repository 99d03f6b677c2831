package auth

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/platform/accesstoken"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/httpx"
	"github.com/sufni/dashboard/internal/services/web/platform/modulehandler"
	"github.com/sufni/dashboard/internal/services/web/platform/pagerender"
	"github.com/sufni/dashboard/internal/services/web/platform/weberror"
	"github.com/sufni/dashboard/internal/services/web/routepath"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

const maxPasswordChangeBody = 4 << 10

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, resolvers module.Resolvers) handlers {
	return handlers{Base: modulehandler.NewBase(resolvers), service: s}
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.ResolveRequestViewer(r).SignedIn() {
		httpx.WriteRedirect(w, r, routepath.DashboardPrefix)
		return
	}
	h.writeLoginPage(w, r, http.StatusOK, loginForm{})
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form payload", err))
		return
	}
	username := r.PostForm.Get("username")
	granted, err := h.service.login(httpx.RequestContext(r), username, r.PostForm.Get("password"))
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindUnauthorized {
			h.WriteError(w, r, err)
			return
		}
		loc := h.Localizer(w, r)
		h.writeLoginPage(w, r, http.StatusUnauthorized, loginForm{Username: username, Error: weberror.PublicMessage(loc, err)})
		return
	}
	accesstoken.WriteCookie(w, r, granted.Token, granted.ExpiresAt)
	httpx.WriteRedirect(w, r, routepath.DashboardPrefix)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	accesstoken.ClearCookie(w, r)
	httpx.WriteRedirect(w, r, routepath.DashboardPrefix)
}

func (h handlers) handleUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.currentUser(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if err != nil {
		httpx.WriteAPIError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, user)
}

type passwordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h handlers) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	var payload passwordChangeRequest
	if err := httpx.DecodeJSON(w, r, maxPasswordChangeBody, &payload); err != nil {
		httpx.WriteAPIError(w, r, err)
		return
	}
	viewer := h.ResolveRequestViewer(r)
	if err := h.service.changePassword(httpx.RequestContext(r), viewer, payload.OldPassword, payload.NewPassword); err != nil {
		httpx.WriteAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) writeLoginPage(w http.ResponseWriter, r *http.Request, statusCode int, form loginForm) {
	loc := h.Localizer(w, r)
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.TF(loc, "login.title", "Sign in"),
		StatusCode: statusCode,
		Content:    LoginForm(loc, form),
	})
}
