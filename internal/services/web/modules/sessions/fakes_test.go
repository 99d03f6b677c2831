package sessions

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"github.com/sufni/dashboard/internal/services/web/module"
)

// fakeGateway implements SessionGateway with a scripted snapshot and call
// tracking.
type fakeGateway struct {
	mu sync.Mutex

	// loaded becomes the snapshot on LoadList.
	loaded  []model.DayGroup
	loadErr error
	groups  []model.DayGroup

	// afterRemove replaces the snapshot on Remove when set; otherwise the
	// removed id is dropped from the snapshot.
	afterRemove []model.DayGroup
	removeErr   error

	details   map[string]model.Detail
	updateErr error

	loadCalls   int
	removeCalls []string
	updates     []fakeUpdate

	changes chan model.Change
}

type fakeUpdate struct {
	ID          string
	Name        string
	Description string
}

func (f *fakeGateway) LoadList(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return f.loadErr
	}
	f.groups = f.loaded
	return nil
}

func (f *fakeGateway) List() []model.DayGroup {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.DayGroup, len(f.groups))
	for i, group := range f.groups {
		out[i] = model.DayGroup{Day: group.Day, Sessions: append([]model.Session(nil), group.Sessions...)}
	}
	return out
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

func (f *fakeGateway) Update(_ context.Context, id string, name string, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fakeUpdate{ID: id, Name: name, Description: description})
	return f.updateErr
}

func (f *fakeGateway) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls = append(f.removeCalls, id)
	if f.afterRemove != nil {
		f.groups = f.afterRemove
	} else {
		f.groups = dropSession(f.groups, id)
	}
	return f.removeErr
}

func (f *fakeGateway) Subscribe() (<-chan model.Change, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changes == nil {
		f.changes = make(chan model.Change, 4)
	}
	return f.changes, func() {}
}

func (f *fakeGateway) removed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removeCalls...)
}

func dropSession(groups []model.DayGroup, id string) []model.DayGroup {
	out := make([]model.DayGroup, 0, len(groups))
	for _, group := range groups {
		kept := make([]model.Session, 0, len(group.Sessions))
		for _, session := range group.Sessions {
			if session.ID != id {
				kept = append(kept, session)
			}
		}
		if len(kept) > 0 {
			out = append(out, model.DayGroup{Day: group.Day, Sessions: kept})
		}
	}
	return out
}

func fullAccessResolvers() module.Resolvers {
	return module.Resolvers{Viewer: func(*http.Request) module.Viewer {
		return module.Viewer{Username: "rider", FullAccess: true}
	}}
}

func readOnlyResolvers() module.Resolvers {
	return module.Resolvers{}
}

func sampleGroups() []model.DayGroup {
	return []model.DayGroup{
		{Day: "2024.05.14", Sessions: []model.Session{
			{ID: "3", Name: "Enduro stage 2", Description: "rebound +2", Timestamp: time.Date(2024, time.May, 14, 15, 0, 0, 0, time.UTC)},
			{ID: "2", Name: "Enduro stage 1", Timestamp: time.Date(2024, time.May, 14, 11, 0, 0, 0, time.UTC)},
		}},
		{Day: "2024.05.12", Sessions: []model.Session{
			{ID: "1", Name: "Local loop", Description: "baseline", Timestamp: time.Date(2024, time.May, 12, 9, 0, 0, 0, time.UTC)},
		}},
	}
}
