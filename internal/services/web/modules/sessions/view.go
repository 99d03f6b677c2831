package sessions

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/a-h/templ"

	"github.com/sufni/dashboard/internal/platform/timeouts"
	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/routepath"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

const (
	// ListContainerID is the element id htmx swaps when the list changes.
	ListContainerID = "session-list"

	closeDrawerHandler = "closeDrawer(document.getElementById('" + webtemplates.DrawerToggleID + "'))"
)

// DayHeader renders the label of one calendar-day group followed by a
// separator.
func DayHeader(day string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := webtemplates.NewWriter(w)
		hw.Raw(`<div class="session-list-day-header"><p>`).Text(day).Raw(`</p><hr></div>`)
		return hw.Err()
	})
}

// SessionRow renders one session link with its description tooltip. The
// delete control is rendered only for viewers with full access.
func SessionRow(session model.Session, viewer module.Viewer, loc webtemplates.Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		description := session.Description
		if description == "" {
			description = webtemplates.TF(loc, "sessions.no_description", "No description")
		}
		hw := webtemplates.NewWriter(w)
		hw.Raw(`<div class="session-list-row"`).Attr("data-session-id", session.ID).Raw(`><div class="tooltip">`)
		hw.Raw(`<a class="session-list-item"`).Attr("href", routepath.Session(session.ID)).Attr("onclick", closeDrawerHandler).Raw(`>`)
		hw.Text(session.Name).Raw(`</a>`)
		hw.Raw(`<span class="tooltiptext">`).Text(description).Raw(`</span></div>`)
		if viewer.FullAccess {
			label := webtemplates.TF(loc, "sessions.delete", "Delete")
			hw.Raw(`<button type="button" class="delete-button"`).
				Attr("hx-delete", routepath.SessionDelete(session.ID)).
				Attr("hx-target", "#"+ListContainerID).
				Attr("hx-swap", "outerHTML").
				Attr("title", label).
				Attr("aria-label", label).
				Raw(`>&times;</button>`)
		}
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// SessionList renders every group in snapshot order: one DayHeader, then one
// SessionRow per session in the group's stored order.
func SessionList(groups []model.DayGroup, viewer module.Viewer, loc webtemplates.Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := webtemplates.NewWriter(w)
		hw.Raw(`<div class="session-list"`).Attr("id", ListContainerID).Raw(`>`)
		for _, group := range groups {
			hw.Component(ctx, DayHeader(group.Day))
			for _, session := range group.Sessions {
				hw.Component(ctx, SessionRow(session, viewer, loc))
			}
		}
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// listSource is what the list view reads from the session model.
type listSource interface {
	LoadList(ctx context.Context) error
	List() []model.DayGroup
}

// listView binds the list components to a session model. The first
// activation loads the list; every render reads the current snapshot.
type listView struct {
	source listSource
	once   sync.Once
}

func newListView(source listSource) *listView {
	return &listView{source: source}
}

// activate triggers the single list load. Load failures are logged and the
// view keeps rendering whatever the model holds.
func (v *listView) activate(ctx context.Context) {
	v.once.Do(func() {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.ModelLoad)
		defer cancel()
		if err := v.source.LoadList(loadCtx); err != nil {
			log.Printf("session list load failed: %v", err)
		}
	})
}

// component activates the view and renders the current snapshot.
func (v *listView) component(ctx context.Context, viewer module.Viewer, loc webtemplates.Localizer) templ.Component {
	v.activate(ctx)
	return SessionList(v.source.List(), viewer, loc)
}
