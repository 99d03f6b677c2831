package sessionapi

import (
	"context"
	"strings"
	"time"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/storeerr"
)

// sessionJSON is the API representation of a session, without its data.
type sessionJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Timestamp is Unix seconds.
	Timestamp int64 `json:"timestamp"`
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Data is the processed recording, base64 encoded on the wire.
	Data      []byte `json:"data"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type service struct {
	gateway SessionGateway
	now     func() time.Time
}

func newService(gateway SessionGateway, now func() time.Time) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if now == nil {
		now = time.Now
	}
	return service{gateway: gateway, now: now}
}

// list returns every session in snapshot order, loading the snapshot first
// when nothing loaded it yet.
func (s service) list(ctx context.Context) ([]sessionJSON, error) {
	if !s.gateway.Loaded() {
		if err := s.gateway.LoadList(ctx); err != nil {
			return nil, storeerr.Map(err, "session")
		}
	}
	out := []sessionJSON{}
	for _, group := range s.gateway.List() {
		for _, session := range group.Sessions {
			out = append(out, toJSON(session))
		}
	}
	return out, nil
}

func (s service) get(ctx context.Context, id string) (sessionJSON, error) {
	detail, err := s.gateway.Get(ctx, id)
	if err != nil {
		return sessionJSON{}, storeerr.Map(err, "session")
	}
	return toJSON(detail.Session), nil
}

func (s service) create(ctx context.Context, req createRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, "name is required")
	}
	if len(req.Data) == 0 {
		return "", apperrors.E(apperrors.KindInvalidInput, "data is required")
	}
	timestamp := s.now().UTC()
	if req.Timestamp != nil {
		timestamp = time.Unix(*req.Timestamp, 0).UTC()
	}
	id, err := s.gateway.Put(ctx, model.NewSession{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Timestamp:   timestamp,
		Data:        req.Data,
	})
	if err != nil && id == "" {
		return "", storeerr.Map(err, "session")
	}
	// A stored session whose snapshot refresh failed is still created.
	return id, nil
}

func (s service) update(ctx context.Context, id string, req updateRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.E(apperrors.KindInvalidInput, "name is required")
	}
	return storeerr.Map(s.gateway.Update(ctx, id, name, strings.TrimSpace(req.Description)), "session")
}

func (s service) remove(ctx context.Context, id string) error {
	return storeerr.Map(s.gateway.Remove(ctx, id), "session")
}

func toJSON(session model.Session) sessionJSON {
	return sessionJSON{
		ID:          session.ID,
		Name:        session.Name,
		Description: session.Description,
		Timestamp:   session.Timestamp.Unix(),
	}
}
