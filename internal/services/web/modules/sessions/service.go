package sessions

import (
	"context"
	"strings"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/storeerr"
)

type service struct {
	gateway SessionGateway
}

func newService(gateway SessionGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) detail(ctx context.Context, id string) (model.Detail, error) {
	detail, err := s.gateway.Get(ctx, id)
	if err != nil {
		return model.Detail{}, storeerr.Map(err, "session")
	}
	return detail, nil
}

func (s service) update(ctx context.Context, id string, name string, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "error.name_required", "session name is required")
	}
	if err := s.gateway.Update(ctx, id, name, strings.TrimSpace(description)); err != nil {
		return storeerr.Map(err, "session")
	}
	return nil
}

func (s service) remove(ctx context.Context, id string) error {
	if err := s.gateway.Remove(ctx, id); err != nil {
		return storeerr.Map(err, "session")
	}
	return nil
}
