package templates

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	webi18n "github.com/sufni/dashboard/internal/services/web/i18n"
	"github.com/sufni/dashboard/internal/services/web/module"
)

func TestLayoutRendersDrawerToggleAndSlots(t *testing.T) {
	t.Parallel()

	drawer := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="drawer-slot"></div>`)
		return err
	})
	main := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="main-slot"></div>`)
		return err
	})
	page := PageContext{Title: "Sessions", Lang: "en-US", Loc: webi18n.Printer(webi18n.Default()), CurrentPath: "/dashboard/"}

	doc := renderDocument(t, Layout(page, drawer), main)

	toggle := findByID(doc, DrawerToggleID)
	if toggle == nil || attr(toggle, "type") != "checkbox" {
		t.Fatalf("expected checkbox with id %q", DrawerToggleID)
	}
	if slot := findByID(doc, "drawer-slot"); slot == nil || slot.Parent == nil || slot.Parent.Data != "nav" {
		t.Fatal("expected drawer content inside nav")
	}
	if slot := findByID(doc, "main-slot"); slot == nil || attr(slot.Parent, "id") != "main" {
		t.Fatal("expected children inside main")
	}
}

func TestLayoutAccountControls(t *testing.T) {
	t.Parallel()

	anonymous := renderString(t, Layout(PageContext{}, nil), nil)
	if !strings.Contains(anonymous, `href="/auth/login"`) {
		t.Fatalf("anonymous layout missing sign-in link: %s", anonymous)
	}

	signedIn := renderString(t, Layout(PageContext{Viewer: module.Viewer{Username: "<rider>", FullAccess: true}}, nil), nil)
	if !strings.Contains(signedIn, `action="/auth/logout"`) {
		t.Fatalf("signed-in layout missing sign-out form: %s", signedIn)
	}
	if strings.Contains(signedIn, "<rider>") {
		t.Fatal("expected username to be escaped")
	}
}

func TestErrorStateUsesStatusMessage(t *testing.T) {
	t.Parallel()

	out := renderString(t, ErrorState(http.StatusNotFound, "", nil), nil)
	if !strings.Contains(out, "The page you requested was not found.") {
		t.Fatalf("error state = %s, want not found message", out)
	}
}

func TestLanguageURLKeepsQuery(t *testing.T) {
	t.Parallel()

	if got := LanguageURL("/dashboard/1", "tab=travel&lang=en-US", "pt-BR"); got != "/dashboard/1?lang=pt-BR&tab=travel" {
		t.Fatalf("LanguageURL() = %q, want %q", got, "/dashboard/1?lang=pt-BR&tab=travel")
	}
}

func TestTFFallsBack(t *testing.T) {
	t.Parallel()

	if got := TF(nil, "missing", "Fallback"); got != "Fallback" {
		t.Fatalf("TF(nil) = %q, want %q", got, "Fallback")
	}
	if got := TF(webi18n.Printer(webi18n.Default()), "missing.key", "Fallback"); got != "Fallback" {
		t.Fatalf("TF(missing) = %q, want %q", got, "Fallback")
	}
}

func renderString(t *testing.T, c templ.Component, children templ.Component) string {
	t.Helper()
	ctx := context.Background()
	if children != nil {
		ctx = templ.WithChildren(ctx, children)
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func renderDocument(t *testing.T, c templ.Component, children templ.Component) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(renderString(t, c, children)))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
