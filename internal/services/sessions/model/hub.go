package model

import (
	"errors"
	"sync"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
)

// ChangeKind names what happened to the snapshot.
type ChangeKind string

const (
	ChangeLoaded  ChangeKind = "loaded"
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one snapshot mutation.
type Change struct {
	Kind ChangeKind
	ID   string
}

const subscriberBuffer = 8

// hub fans out changes. Full subscriber buffers drop the change instead of
// blocking the writer.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Change
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan Change)}
}

func (h *hub) subscribe() (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Change, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (h *hub) publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
