package sessions

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/web/module"
	"github.com/sufni/dashboard/internal/services/web/routepath"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

const recordedAtLayout = "2006.01.02 15:04"

// PickPrompt renders the main column before a session is selected.
func PickPrompt(loc webtemplates.Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := webtemplates.NewWriter(w)
		hw.Raw(`<p class="session-pick">`).Text(webtemplates.TF(loc, "sessions.pick", "Select a session from the list.")).Raw(`</p>`)
		return hw.Err()
	})
}

// detailForm carries the editable fields and a validation message when a
// submitted form is re-rendered.
type detailForm struct {
	Name        string
	Description string
	Error       string
}

// SessionDetail renders one session. Viewers with full access get an edit
// form for name and description.
func SessionDetail(detail model.Detail, viewer module.Viewer, loc webtemplates.Localizer, location *time.Location) templ.Component {
	return sessionDetail(detail, viewer, loc, location, detailForm{Name: detail.Name, Description: detail.Description})
}

func sessionDetail(detail model.Detail, viewer module.Viewer, loc webtemplates.Localizer, location *time.Location, form detailForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if location == nil {
			location = time.UTC
		}
		description := detail.Description
		if description == "" {
			description = webtemplates.TF(loc, "sessions.no_description", "No description")
		}
		hw := webtemplates.NewWriter(w)
		hw.Raw(`<section class="session-detail"`).Attr("data-session-id", detail.ID).Raw(`>`)
		hw.Raw(`<h1>`).Text(detail.Name).Raw(`</h1>`)
		hw.Raw(`<p class="session-recorded">`).Text(webtemplates.TF(loc, "session.recorded_at", "Recorded at")).Raw(` <time`)
		hw.Attr("datetime", detail.Timestamp.UTC().Format(time.RFC3339)).Raw(`>`)
		hw.Text(detail.Timestamp.In(location).Format(recordedAtLayout)).Raw(`</time></p>`)
		hw.Raw(`<p class="session-description">`).Text(description).Raw(`</p>`)
		hw.Raw(`<p class="session-data">`).Text(webtemplates.TF(loc, "session.data_size", "%d bytes of processed data", len(detail.Data))).Raw(`</p>`)

		if viewer.FullAccess {
			action := routepath.Session(detail.ID)
			hw.Raw(`<form class="session-edit" method="post"`).Attr("action", action).
				Attr("hx-post", action).Attr("hx-target", "#main").Attr("hx-swap", "innerHTML").Raw(`>`)
			if form.Error != "" {
				hw.Raw(`<p class="form-error" role="alert">`).Text(form.Error).Raw(`</p>`)
			}
			hw.Raw(`<label>`).Text(webtemplates.TF(loc, "session.name", "Name"))
			hw.Raw(`<input type="text" name="name" required`).Attr("value", form.Name).Raw(`></label>`)
			hw.Raw(`<label>`).Text(webtemplates.TF(loc, "session.description", "Description"))
			hw.Raw(`<textarea name="description">`).Text(form.Description).Raw(`</textarea></label>`)
			hw.Raw(`<button type="submit">`).Text(webtemplates.TF(loc, "session.save", "Save")).Raw(`</button></form>`)
		}
		hw.Raw(`</section>`)
		return hw.Err()
	})
}
