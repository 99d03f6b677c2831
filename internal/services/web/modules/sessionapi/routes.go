package sessionapi

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.APISessions, h.handleList)
	mux.HandleFunc(http.MethodPut+" "+routepath.APISessions, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.APISessionPattern, h.handleGet)
	mux.HandleFunc(http.MethodPatch+" "+routepath.APISessionPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodDelete+" "+routepath.APISessionPattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIBoards, h.handleListBoards)
	mux.HandleFunc(http.MethodPut+" "+routepath.APIBoards, h.handlePutBoard)
	mux.HandleFunc(http.MethodDelete+" "+routepath.APIBoardPattern, h.handleDeleteBoard)
	mux.HandleFunc(routepath.APIPrefix, h.handleNotFound)
}
