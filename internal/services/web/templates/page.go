package templates

import (
	"github.com/sufni/dashboard/internal/services/web/module"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title        string
	Lang         string
	Loc          Localizer
	Viewer       module.Viewer
	CurrentPath  string
	CurrentQuery string
	Toast        *Toast
}

// Toast is a one-time notice rendered by the layout.
type Toast struct {
	Kind    string
	Message string
}

// PageTitle returns title with the product suffix.
func PageTitle(loc Localizer, title string) string {
	product := TF(loc, "app.title", "Sufni Suspension Telemetry")
	if title == "" {
		return product
	}
	return title + " | " + product
}
