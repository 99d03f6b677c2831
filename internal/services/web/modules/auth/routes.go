package auth

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthUser, h.handleUser)
	mux.HandleFunc(http.MethodPatch+" "+routepath.PasswordChange, h.handlePasswordChange)
	mux.HandleFunc(routepath.AuthPrefix, h.WriteNotFound)
}
