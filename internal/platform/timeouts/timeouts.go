// Package timeouts defines shared timeout constants used by the web process.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ModelLoad caps the background session list load started by the list view.
const ModelLoad = 10 * time.Second

// WebsocketWrite caps a single change-notification write to a live client.
const WebsocketWrite = 2 * time.Second
