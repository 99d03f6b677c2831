package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	webi18n "github.com/sufni/dashboard/internal/services/web/i18n"
	"github.com/sufni/dashboard/internal/services/web/routepath"
)

// DrawerToggleID is the element id of the checkbox that opens the session
// drawer on narrow screens.
const DrawerToggleID = "drawer-toggle"

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Layout renders the full dashboard document. The drawer holds the session
// list and the children render into the main column.
func Layout(page PageContext, drawer templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Lang
		if lang == "" {
			lang = webi18n.Default().String()
		}
		hw := NewWriter(w)
		hw.Raw(`<!doctype html><html`).Attr("lang", lang).Raw(`><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`).Text(PageTitle(page.Loc, page.Title)).Raw(`</title>`)
		hw.Raw(`<link rel="stylesheet"`).Attr("href", routepath.StaticPrefix+"dashboard.css").Raw(`>`)
		hw.Raw(`<script`).Attr("src", htmxScriptURL).Raw(` defer></script>`)
		hw.Raw(`<script`).Attr("src", routepath.StaticPrefix+"drawer.js").Raw(` defer></script>`)
		hw.Raw(`<script`).Attr("src", routepath.StaticPrefix+"live.js").Raw(` defer></script>`)
		hw.Raw(`</head><body>`)

		hw.Raw(`<input type="checkbox" class="drawer-toggle"`).Attr("id", DrawerToggleID).Raw(`>`)
		hw.Raw(`<header class="topbar"><label class="drawer-button"`).Attr("for", DrawerToggleID).Raw(`>`)
		hw.Text(TF(page.Loc, "nav.sessions", "Sessions")).Raw(`</label>`)
		hw.Raw(`<a class="brand"`).Attr("href", routepath.DashboardPrefix).Raw(`>`)
		hw.Text(TF(page.Loc, "app.title", "Sufni Suspension Telemetry")).Raw(`</a>`)
		writeLanguageLinks(hw, page)
		writeAccount(hw, page)
		hw.Raw(`</header>`)

		hw.Raw(`<nav class="drawer"`).Attr("aria-label", TF(page.Loc, "nav.sessions", "Sessions")).Raw(`>`)
		hw.Component(ctx, drawer)
		hw.Raw(`</nav><main id="main">`)
		hw.Component(ctx, templ.GetChildren(ctx))
		hw.Raw(`</main>`)
		if page.Toast != nil && page.Toast.Message != "" {
			hw.Raw(`<div role="status"`).Attr("class", "toast toast-"+page.Toast.Kind).Raw(`>`)
			hw.Text(page.Toast.Message).Raw(`</div>`)
		}
		hw.Raw(`</body></html>`)
		return hw.Err()
	})
}

func writeLanguageLinks(hw *Writer, page PageContext) {
	hw.Raw(`<ul class="languages">`)
	for _, tag := range webi18n.Supported() {
		key := "nav.lang_en"
		fallback := "English"
		if base, _ := tag.Base(); base.String() == "pt" {
			key = "nav.lang_pt_br"
			fallback = "Português (Brasil)"
		}
		class := "language"
		if tag.String() == page.Lang {
			class += " active"
		}
		hw.Raw(`<li><a`).Attr("class", class).Attr("href", LanguageURL(page.CurrentPath, page.CurrentQuery, tag.String())).Raw(`>`)
		hw.Text(TF(page.Loc, key, fallback)).Raw(`</a></li>`)
	}
	hw.Raw(`</ul>`)
}

func writeAccount(hw *Writer, page PageContext) {
	if !page.Viewer.SignedIn() {
		hw.Raw(`<a class="sign-in"`).Attr("href", routepath.Login).Raw(`>`)
		hw.Text(TF(page.Loc, "nav.sign_in", "Sign in")).Raw(`</a>`)
		return
	}
	hw.Raw(`<form class="sign-out" method="post"`).Attr("action", routepath.Logout).Raw(`><span>`)
	hw.Text(TF(page.Loc, "nav.signed_in_as", "Signed in as %s", page.Viewer.Username)).Raw(`</span>`)
	hw.Raw(`<button type="submit">`).Text(TF(page.Loc, "nav.sign_out", "Sign out")).Raw(`</button></form>`)
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(path string, rawQuery string, tag string) string {
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(webi18n.LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
