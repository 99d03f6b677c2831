package sessionapi

import (
	"net/http"

	"github.com/sufni/dashboard/internal/services/web/module"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/httpx"
)

const (
	sessionIDPathValue = "sessionID"
	// maxCreateBody bounds an import payload, data included.
	maxCreateBody = 64 << 20
	maxUpdateBody = 64 << 10
)

type handlers struct {
	service   service
	boards    boardService
	tokens    tokenSet
	resolvers module.Resolvers
}

func newHandlers(s service, boards boardService, tokens tokenSet, resolvers module.Resolvers) handlers {
	return handlers{service: s, boards: boards, tokens: tokens, resolvers: resolvers}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.list(httpx.RequestContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, sessions)
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.get(httpx.RequestContext(r), r.PathValue(sessionIDPathValue))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, session)
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.trusted(r) {
		h.writeError(w, r, errForbidden())
		return
	}
	var payload createRequest
	if err := httpx.DecodeJSON(w, r, maxCreateBody, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.service.create(httpx.RequestContext(r), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.resolvers.ResolveRequestViewer(r).FullAccess {
		h.writeError(w, r, errForbidden())
		return
	}
	var payload updateRequest
	if err := httpx.DecodeJSON(w, r, maxUpdateBody, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.service.update(httpx.RequestContext(r), r.PathValue(sessionIDPathValue), payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.resolvers.ResolveRequestViewer(r).FullAccess {
		h.writeError(w, r, errForbidden())
		return
	}
	if err := h.service.remove(httpx.RequestContext(r), r.PathValue(sessionIDPathValue)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// trusted reports whether the request carries an import token or comes from
// a full access viewer.
func (h handlers) trusted(r *http.Request) bool {
	return h.tokens.allows(r) || h.resolvers.ResolveRequestViewer(r).FullAccess
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteAPIError(w, r, err)
}

func errForbidden() error {
	return apperrors.E(apperrors.KindForbidden, "full access required")
}
