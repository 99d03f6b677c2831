package sessions

import (
	"net/http"
	"time"

	"github.com/sufni/dashboard/internal/services/web/module"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/flash"
	"github.com/sufni/dashboard/internal/services/web/platform/httpx"
	"github.com/sufni/dashboard/internal/services/web/platform/modulehandler"
	"github.com/sufni/dashboard/internal/services/web/platform/pagerender"
	"github.com/sufni/dashboard/internal/services/web/platform/weberror"
	"github.com/sufni/dashboard/internal/services/web/routepath"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

const sessionIDPathValue = "sessionID"

type handlers struct {
	modulehandler.Base
	service  service
	list     *listView
	location *time.Location
}

func newHandlers(s service, resolvers module.Resolvers, location *time.Location) handlers {
	if location == nil {
		location = time.UTC
	}
	return handlers{
		Base:     modulehandler.NewBase(resolvers),
		service:  s,
		list:     newListView(s.gateway),
		location: location,
	}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	viewer := h.ResolveRequestViewer(r)
	h.WritePage(w, r, pagerender.Page{
		Title:   webtemplates.TF(loc, "nav.sessions", "Sessions"),
		Drawer:  h.list.component(r.Context(), viewer, loc),
		Content: PickPrompt(loc),
	})
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	viewer := h.ResolveRequestViewer(r)
	h.WriteFragment(w, r, http.StatusOK, h.list.component(r.Context(), viewer, loc))
}

// handleDelete removes one session and answers with the list re-rendered
// from the model's snapshot after the removal.
func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	viewer := h.ResolveRequestViewer(r)
	if !viewer.FullAccess {
		h.WriteError(w, r, errFullAccessRequired())
		return
	}
	ctx := httpx.RequestContext(r)
	h.list.activate(ctx)
	if err := h.service.remove(ctx, r.PathValue(sessionIDPathValue)); err != nil && apperrors.KindOf(err) != apperrors.KindNotFound {
		h.WriteError(w, r, err)
		return
	}
	loc := h.Localizer(w, r)
	h.WriteFragment(w, r, http.StatusOK, SessionList(h.service.gateway.List(), viewer, loc))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	detail, err := h.service.detail(ctx, r.PathValue(sessionIDPathValue))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.Localizer(w, r)
	viewer := h.ResolveRequestViewer(r)
	h.WritePage(w, r, pagerender.Page{
		Title:   detail.Name,
		Drawer:  h.list.component(ctx, viewer, loc),
		Content: SessionDetail(detail, viewer, loc, h.location),
	})
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	viewer := h.ResolveRequestViewer(r)
	if !viewer.FullAccess {
		h.WriteError(w, r, errFullAccessRequired())
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form payload", err))
		return
	}
	ctx := httpx.RequestContext(r)
	id := r.PathValue(sessionIDPathValue)
	name := r.PostForm.Get("name")
	description := r.PostForm.Get("description")

	err := h.service.update(ctx, id, name, description)
	if err == nil {
		flash.Write(w, r, flash.Notice{Kind: flash.KindSuccess, Key: "session.saved"})
		httpx.WriteRedirect(w, r, routepath.Session(id))
		return
	}
	if apperrors.KindOf(err) != apperrors.KindInvalidInput {
		h.WriteError(w, r, err)
		return
	}

	detail, detailErr := h.service.detail(ctx, id)
	if detailErr != nil {
		h.WriteError(w, r, detailErr)
		return
	}
	loc := h.Localizer(w, r)
	form := detailForm{Name: name, Description: description, Error: weberror.PublicMessage(loc, err)}
	statusCode := http.StatusBadRequest
	if httpx.IsHTMXRequest(r) {
		// htmx skips swapping error statuses.
		statusCode = http.StatusOK
	}
	h.WritePage(w, r, pagerender.Page{
		Title:      detail.Name,
		StatusCode: statusCode,
		Drawer:     h.list.component(ctx, viewer, loc),
		Content:    sessionDetail(detail, viewer, loc, h.location, form),
	})
}

func errFullAccessRequired() error {
	return apperrors.EK(apperrors.KindForbidden, "error.forbidden", "full access required")
}
