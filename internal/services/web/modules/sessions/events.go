package sessions

import (
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	"github.com/sufni/dashboard/internal/platform/timeouts"
	"github.com/sufni/dashboard/internal/services/sessions/model"
)

// EventSessionsChanged is the event type pushed when the list snapshot changes.
const EventSessionsChanged = "sessions.changed"

type changeEvent struct {
	Type   string `json:"type"`
	Change string `json:"change"`
	ID     string `json:"id,omitempty"`
}

func (h handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(h.streamChanges).ServeHTTP(w, r)
}

// streamChanges forwards model changes until the client goes away or the
// request context ends.
func (h handlers) streamChanges(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	changes, cancel := h.service.gateway.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_, _ = io.Copy(io.Discard, conn)
	}()

	ctx := conn.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := h.sendChange(conn, change); err != nil {
				log.Printf("session events write failed remote=%s err=%v", conn.Request().RemoteAddr, err)
				return
			}
		}
	}
}

func (h handlers) sendChange(conn *websocket.Conn, change model.Change) error {
	if err := conn.SetWriteDeadline(time.Now().Add(timeouts.WebsocketWrite)); err != nil {
		return err
	}
	return websocket.JSON.Send(conn, changeEvent{
		Type:   EventSessionsChanged,
		Change: string(change.Kind),
		ID:     change.ID,
	})
}
