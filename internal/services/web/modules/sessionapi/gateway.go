package sessionapi

import (
	"context"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
)

// SessionGateway is the slice of the session model the API consumes.
type SessionGateway interface {
	Loaded() bool
	LoadList(ctx context.Context) error
	List() []model.DayGroup
	Get(ctx context.Context, id string) (model.Detail, error)
	Put(ctx context.Context, input model.NewSession) (string, error)
	Update(ctx context.Context, id string, name string, description string) error
	Remove(ctx context.Context, id string) error
}

var _ SessionGateway = (*model.Model)(nil)

type unavailableGateway struct{}

func (unavailableGateway) Loaded() bool { return false }

func (unavailableGateway) LoadList(context.Context) error { return errUnavailable() }

func (unavailableGateway) List() []model.DayGroup { return nil }

func (unavailableGateway) Get(context.Context, string) (model.Detail, error) {
	return model.Detail{}, errUnavailable()
}

func (unavailableGateway) Put(context.Context, model.NewSession) (string, error) {
	return "", errUnavailable()
}

func (unavailableGateway) Update(context.Context, string, string, string) error {
	return errUnavailable()
}

func (unavailableGateway) Remove(context.Context, string) error { return errUnavailable() }

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "session store is not configured")
}
