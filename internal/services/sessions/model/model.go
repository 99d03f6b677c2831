// Package model holds the in-process session list state shared by the web
// views. The model owns fetching, the day-grouped snapshot and mutations;
// views only read snapshots and delegate writes.
package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	platformotel "github.com/sufni/dashboard/internal/platform/otel"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/sufni/dashboard/internal/services/sessions/model"

// DayKeyLayout formats the day key of a session group.
const DayKeyLayout = "2006.01.02"

// Session is the read-only list entry exposed to views.
type Session struct {
	ID          string
	Name        string
	Description string
	Timestamp   time.Time
}

// Detail is a single session including its recording payload.
type Detail struct {
	Session
	Data []byte
}

// NewSession carries the fields accepted when importing a session.
type NewSession struct {
	Name        string
	Description string
	Timestamp   time.Time
	Data        []byte
}

// DayGroup pairs a day key with the sessions recorded on that day.
type DayGroup struct {
	Day      string
	Sessions []Session
}

// Option customizes a Model.
type Option func(*Model)

// WithLocation sets the time zone used to derive day keys.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.location = loc
		}
	}
}

// WithTracer overrides the tracer used for model operations.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Model) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// Model is the shared, read-mostly session list store.
type Model struct {
	store    storage.SessionStore
	location *time.Location
	tracer   trace.Tracer

	// writeMu serializes store writes and snapshot reloads so a reload
	// never publishes rows read before a concurrent mutation landed.
	writeMu sync.Mutex

	mu     sync.RWMutex
	groups []DayGroup
	loaded bool

	hub *hub
}

// New builds a model over store. The snapshot stays empty until LoadList.
func New(store storage.SessionStore, opts ...Option) *Model {
	m := &Model{
		store:    store,
		location: time.UTC,
		tracer:   platformotel.Tracer(tracerName),
		hub:      newHub(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// LoadList fetches all sessions and replaces the grouped snapshot.
func (m *Model) LoadList(ctx context.Context) (err error) {
	ctx, span := m.tracer.Start(ctx, "sessions.LoadList")
	defer func() { endSpan(span, err) }()

	if m.store == nil {
		return fmt.Errorf("session store is not configured")
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	count, days, err := m.reloadLocked(ctx)
	if err != nil {
		return fmt.Errorf("load session list: %w", err)
	}
	span.SetAttributes(attribute.Int("sessions.count", count), attribute.Int("sessions.days", days))
	m.hub.publish(Change{Kind: ChangeLoaded})
	return nil
}

// List returns a copy of the current grouped snapshot.
func (m *Model) List() []DayGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneGroups(m.groups)
}

// Loaded reports whether a LoadList call has completed successfully.
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Get returns one session with its recording payload.
func (m *Model) Get(ctx context.Context, id string) (detail Detail, err error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Get", trace.WithAttributes(attribute.String("session.id", id)))
	defer func() { endSpan(span, err) }()

	if m.store == nil {
		return Detail{}, fmt.Errorf("session store is not configured")
	}
	record, err := m.store.GetSession(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("get session %q: %w", id, err)
	}
	return Detail{Session: fromRecord(record), Data: record.Data}, nil
}

// Put stores a new session and refreshes the snapshot.
func (m *Model) Put(ctx context.Context, input NewSession) (id string, err error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Put")
	defer func() { endSpan(span, err) }()

	if m.store == nil {
		return "", fmt.Errorf("session store is not configured")
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	id, err = m.store.CreateSession(ctx, storage.Session{
		Name:        input.Name,
		Description: input.Description,
		Timestamp:   input.Timestamp,
		Data:        input.Data,
	})
	if err != nil {
		return "", fmt.Errorf("put session: %w", err)
	}
	span.SetAttributes(attribute.String("session.id", id))
	if _, _, err := m.reloadLocked(ctx); err != nil {
		return id, fmt.Errorf("refresh session list: %w", err)
	}
	m.hub.publish(Change{Kind: ChangeCreated, ID: id})
	return id, nil
}

// Update changes a session's name and description.
func (m *Model) Update(ctx context.Context, id string, name string, description string) (err error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Update", trace.WithAttributes(attribute.String("session.id", id)))
	defer func() { endSpan(span, err) }()

	if m.store == nil {
		return fmt.Errorf("session store is not configured")
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if err := m.store.UpdateSession(ctx, id, name, description); err != nil {
		return fmt.Errorf("update session %q: %w", id, err)
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	m.mu.Lock()
	for gi := range m.groups {
		for si := range m.groups[gi].Sessions {
			if m.groups[gi].Sessions[si].ID == id {
				m.groups[gi].Sessions[si].Name = name
				m.groups[gi].Sessions[si].Description = description
			}
		}
	}
	m.mu.Unlock()

	m.hub.publish(Change{Kind: ChangeUpdated, ID: id})
	return nil
}

// Remove deletes a session and drops it from the snapshot. A session missing
// from storage is still dropped from the snapshot before the error returns.
func (m *Model) Remove(ctx context.Context, id string) (err error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Remove", trace.WithAttributes(attribute.String("session.id", id)))
	defer func() { endSpan(span, err) }()

	if m.store == nil {
		return fmt.Errorf("session store is not configured")
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	storeErr := m.store.DeleteSession(ctx, id)
	if storeErr != nil && !isNotFound(storeErr) {
		return fmt.Errorf("remove session %q: %w", id, storeErr)
	}

	m.mu.Lock()
	removed := false
	m.groups, removed = withoutSession(m.groups, id)
	loaded := m.loaded
	m.mu.Unlock()

	if storeErr == nil && !removed && loaded {
		// The store deleted a row the snapshot does not know by this id.
		if _, _, err := m.reloadLocked(ctx); err != nil {
			return fmt.Errorf("refresh session list: %w", err)
		}
	}

	if removed || storeErr == nil {
		m.hub.publish(Change{Kind: ChangeRemoved, ID: id})
	}
	if storeErr != nil {
		return fmt.Errorf("remove session %q: %w", id, storeErr)
	}
	return nil
}

// Subscribe registers for snapshot change notifications. The returned cancel
// function must be called to release the subscription.
func (m *Model) Subscribe() (<-chan Change, func()) {
	return m.hub.subscribe()
}

// reloadLocked reads the store and swaps in a fresh snapshot. Callers hold
// writeMu.
func (m *Model) reloadLocked(ctx context.Context) (int, int, error) {
	records, err := m.store.ListSessions(ctx)
	if err != nil {
		return 0, 0, err
	}
	sessions := make([]Session, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, fromRecord(record))
	}
	groups := GroupByDay(sessions, m.location)

	m.mu.Lock()
	m.groups = groups
	m.loaded = true
	m.mu.Unlock()
	return len(sessions), len(groups), nil
}

// GroupByDay groups consecutive sessions by day key in loc. Day keys keep
// their first-appearance order and sessions keep their input order.
func GroupByDay(sessions []Session, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}
	groups := make([]DayGroup, 0)
	index := make(map[string]int)
	for _, session := range sessions {
		day := session.Timestamp.In(loc).Format(DayKeyLayout)
		pos, ok := index[day]
		if !ok {
			pos = len(groups)
			index[day] = pos
			groups = append(groups, DayGroup{Day: day})
		}
		groups[pos].Sessions = append(groups[pos].Sessions, session)
	}
	return groups
}

func withoutSession(groups []DayGroup, id string) ([]DayGroup, bool) {
	removed := false
	out := groups[:0]
	for _, group := range groups {
		kept := group.Sessions[:0]
		for _, session := range group.Sessions {
			if session.ID == id {
				removed = true
				continue
			}
			kept = append(kept, session)
		}
		if len(kept) == 0 {
			continue
		}
		group.Sessions = kept
		out = append(out, group)
	}
	return out, removed
}

func cloneGroups(groups []DayGroup) []DayGroup {
	if len(groups) == 0 {
		return []DayGroup{}
	}
	out := make([]DayGroup, len(groups))
	for i, group := range groups {
		out[i] = DayGroup{Day: group.Day, Sessions: append([]Session(nil), group.Sessions...)}
	}
	return out
}

func fromRecord(record storage.Session) Session {
	return Session{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Timestamp:   record.Timestamp,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
