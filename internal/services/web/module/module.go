// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Viewer describes the requester as seen by page chrome and access checks.
type Viewer struct {
	Username string
	// FullAccess gates destructive and editing controls.
	FullAccess bool
}

// SignedIn reports whether the viewer carries an authenticated identity.
func (v Viewer) SignedIn() bool {
	return v.Username != ""
}

// ResolveViewer resolves viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is implemented by modules that can report whether their
// backing dependencies are usable.
type HealthReporter interface {
	Healthy() bool
}

// RequestResolver resolves viewer and language state from a request.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) Viewer
	ResolveRequestLanguage(r *http.Request) string
}

// Resolvers adapts resolver funcs to RequestResolver. Nil funcs resolve to an
// anonymous viewer and negotiated language.
type Resolvers struct {
	Viewer   ResolveViewer
	Language ResolveLanguage
}

// ResolveRequestViewer implements RequestResolver.
func (r Resolvers) ResolveRequestViewer(req *http.Request) Viewer {
	if r.Viewer == nil {
		return Viewer{}
	}
	return r.Viewer(req)
}

// ResolveRequestLanguage implements RequestResolver.
func (r Resolvers) ResolveRequestLanguage(req *http.Request) string {
	if r.Language == nil {
		return ""
	}
	return r.Language(req)
}
