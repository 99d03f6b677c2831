package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/sufni/dashboard/internal/services/web/routepath"
	webtemplates "github.com/sufni/dashboard/internal/services/web/templates"
)

type loginForm struct {
	Username string
	Error    string
}

// LoginForm renders the sign-in form.
func LoginForm(loc webtemplates.Localizer, form loginForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := webtemplates.NewWriter(w)
		hw.Raw(`<section class="login"><h1>`).Text(webtemplates.TF(loc, "login.title", "Sign in")).Raw(`</h1>`)
		hw.Raw(`<form class="login-form" method="post"`).Attr("action", routepath.Login).Raw(`>`)
		if form.Error != "" {
			hw.Raw(`<p class="form-error" role="alert">`).Text(form.Error).Raw(`</p>`)
		}
		hw.Raw(`<label>`).Text(webtemplates.TF(loc, "login.username", "Username"))
		hw.Raw(`<input type="text" name="username" autocomplete="username" required`).Attr("value", form.Username).Raw(`></label>`)
		hw.Raw(`<label>`).Text(webtemplates.TF(loc, "login.password", "Password"))
		hw.Raw(`<input type="password" name="password" autocomplete="current-password" required></label>`)
		hw.Raw(`<button type="submit">`).Text(webtemplates.TF(loc, "login.submit", "Sign in")).Raw(`</button>`)
		hw.Raw(`</form></section>`)
		return hw.Err()
	})
}
