// Package web owns the browser-facing session dashboard.
//
// It wires the session model, access tokens and feature modules into one
// HTTP server and owns that server's lifecycle.
package web
