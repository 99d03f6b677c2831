package sessions

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardSessions, h.handleList)
	mux.HandleFunc(http.MethodDelete+" "+routepath.SessionDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardEvents, h.handleEvents)
	mux.HandleFunc(http.MethodGet+" "+routepath.SessionPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.SessionPattern, h.handleUpdate)
	mux.HandleFunc(routepath.DashboardPrefix, h.WriteNotFound)
}
