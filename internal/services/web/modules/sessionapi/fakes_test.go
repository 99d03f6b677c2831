package sessionapi

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"github.com/sufni/dashboard/internal/services/web/module"
)

type fakeGateway struct {
	mu sync.Mutex

	loaded    bool
	loadCalls int
	loadErr   error
	groups    []model.DayGroup
	details   map[string]model.Detail

	puts     []model.NewSession
	putID    string
	putErr   error
	updates  []string
	removes  []string
	writeErr error
}

func (f *fakeGateway) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *fakeGateway) LoadList(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = true
	return nil
}

func (f *fakeGateway) List() []model.DayGroup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.groups
}

func (f *fakeGateway) Get(_ context.Context, id string) (model.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	detail, ok := f.details[id]
	if !ok {
		return model.Detail{}, storage.ErrNotFound
	}
	return detail, nil
}

func (f *fakeGateway) Put(_ context.Context, input model.NewSession) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, input)
	return f.putID, f.putErr
}

func (f *fakeGateway) Update(_ context.Context, id string, name string, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, id+"|"+name+"|"+description)
	return f.writeErr
}

func (f *fakeGateway) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, id)
	return f.writeErr
}

func fullAccessResolvers() module.Resolvers {
	return module.Resolvers{Viewer: func(*http.Request) module.Viewer {
		return module.Viewer{Username: "rider", FullAccess: true}
	}}
}

func sampleGroups() []model.DayGroup {
	return []model.DayGroup{
		{Day: "2024.05.14", Sessions: []model.Session{
			{ID: "3", Name: "Enduro stage 2", Description: "rebound +2", Timestamp: time.Unix(1715698800, 0).UTC()},
		}},
		{Day: "2024.05.12", Sessions: []model.Session{
			{ID: "1", Name: "Local loop", Timestamp: time.Unix(1715504400, 0).UTC()},
		}},
	}
}

type fakeBoards struct {
	mu sync.Mutex

	boards    map[string]storage.Board
	deletes   []string
	listErr   error
	putErr    error
	deleteErr error
}

func newFakeBoards(boards ...storage.Board) *fakeBoards {
	f := &fakeBoards{boards: map[string]storage.Board{}}
	for _, board := range boards {
		f.boards[board.ID] = board
	}
	return f
}

func (f *fakeBoards) ListBoards(context.Context) ([]storage.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]storage.Board, 0, len(f.boards))
	for _, board := range f.boards {
		out = append(out, board)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBoards) PutBoard(_ context.Context, board storage.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.boards[board.ID] = board
	return nil
}

func (f *fakeBoards) DeleteBoard(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.boards[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.boards, id)
	return nil
}
