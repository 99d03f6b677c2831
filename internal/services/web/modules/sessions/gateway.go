package sessions

import (
	"context"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
)

// SessionGateway is the slice of the session model the dashboard consumes.
// *model.Model satisfies it.
type SessionGateway interface {
	LoadList(ctx context.Context) error
	List() []model.DayGroup
	Get(ctx context.Context, id string) (model.Detail, error)
	Update(ctx context.Context, id string, name string, description string) error
	Remove(ctx context.Context, id string) error
	Subscribe() (<-chan model.Change, func())
}

var _ SessionGateway = (*model.Model)(nil)

type unavailableGateway struct{}

func (unavailableGateway) LoadList(context.Context) error {
	return errUnavailable()
}

func (unavailableGateway) List() []model.DayGroup {
	return []model.DayGroup{}
}

func (unavailableGateway) Get(context.Context, string) (model.Detail, error) {
	return model.Detail{}, errUnavailable()
}

func (unavailableGateway) Update(context.Context, string, string, string) error {
	return errUnavailable()
}

func (unavailableGateway) Remove(context.Context, string) error {
	return errUnavailable()
}

func (unavailableGateway) Subscribe() (<-chan model.Change, func()) {
	ch := make(chan model.Change)
	close(ch)
	return ch, func() {}
}

func errUnavailable() error {
	return apperrors.EK(apperrors.KindUnavailable, "error.unavailable", "session store is not configured")
}
