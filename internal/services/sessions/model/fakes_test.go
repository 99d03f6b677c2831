package model

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
)

// fakeStore implements storage.SessionStore in memory with call tracking.
type fakeStore struct {
	mu        sync.Mutex
	sessions  []storage.Session
	nextID    int
	listErr   error
	deleteErr error
	listCalls int
	deleted   []string
}

func (f *fakeStore) ListSessions(context.Context) ([]storage.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]storage.Session(nil), f.sessions...), nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (storage.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, session := range f.sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return storage.Session{}, storage.ErrNotFound
}

func (f *fakeStore) CreateSession(_ context.Context, session storage.Session) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	session.ID = "new-" + strconv.Itoa(f.nextID)
	f.sessions = append([]storage.Session{session}, f.sessions...)
	return session.ID, nil
}

func (f *fakeStore) UpdateSession(_ context.Context, id string, name string, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions[i].Name = name
			f.sessions[i].Description = description
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// blockingListStore holds ListSessions open after reading its rows until
// release is closed.
type blockingListStore struct {
	*fakeStore
	entered     chan struct{}
	release     chan struct{}
	enteredOnce sync.Once
}

func newBlockingListStore(store *fakeStore) *blockingListStore {
	return &blockingListStore{fakeStore: store, entered: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingListStore) ListSessions(ctx context.Context) ([]storage.Session, error) {
	records, err := b.fakeStore.ListSessions(ctx)
	b.enteredOnce.Do(func() { close(b.entered) })
	<-b.release
	return records, err
}

// aliasDeleteStore deletes "007" as row "7", like a store that accepts
// padded ids.
type aliasDeleteStore struct {
	*fakeStore
}

func (a aliasDeleteStore) DeleteSession(ctx context.Context, id string) error {
	return a.fakeStore.DeleteSession(ctx, strings.TrimLeft(id, "0"))
}
