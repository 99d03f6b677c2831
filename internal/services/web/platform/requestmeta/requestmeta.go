// Package requestmeta provides normalized request metadata helpers.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// IsHTTPS reports whether a request arrived over TLS or carries an explicit
// https URL scheme.
func IsHTTPS(r *http.Request) bool {
	return requestScheme(r) == "https"
}

// IsUnsafeMethod reports whether method can change server state.
func IsUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// HasSameOriginProof reports whether Origin or Referer proves same-origin.
func HasSameOriginProof(r *http.Request) bool {
	if r == nil {
		return false
	}
	scheme, host, port := requestOriginParts(r)
	if host == "" {
		return false
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return sameOrigin(origin, scheme, host, port)
	}
	if referer := strings.TrimSpace(r.Header.Get("Referer")); referer != "" {
		return sameOrigin(referer, scheme, host, port)
	}
	return false
}

func sameOrigin(raw string, scheme string, host string, port string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	originScheme := strings.ToLower(parsed.Scheme)
	if originScheme == "" || originScheme != scheme {
		return false
	}
	if strings.ToLower(parsed.Hostname()) != host {
		return false
	}
	originPort := parsed.Port()
	if originPort == "" {
		originPort = defaultPort(originScheme)
	}
	return originPort == port
}

func requestOriginParts(r *http.Request) (string, string, string) {
	scheme := requestScheme(r)
	rawHost := r.Host
	if rawHost == "" && r.URL != nil {
		rawHost = r.URL.Host
	}
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return scheme, "", ""
	}
	port := parsed.Port()
	if port == "" {
		port = defaultPort(scheme)
	}
	return scheme, strings.ToLower(parsed.Hostname()), port
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if r.URL != nil {
		if scheme := strings.ToLower(r.URL.Scheme); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}
