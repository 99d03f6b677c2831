// Package storeerr lifts storage sentinels into typed web errors.
package storeerr

import (
	"context"
	"errors"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
)

// Map converts storage failures for subject (for example "session") into
// typed errors. Typed errors and unknown failures pass through unchanged.
func Map(err error, subject string) error {
	if err == nil {
		return nil
	}
	if apperrors.KindOf(err) != apperrors.KindUnknown {
		return err
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.Wrap(apperrors.KindNotFound, subject+" not found", err)
	case errors.Is(err, storage.ErrInvalid):
		return apperrors.Wrap(apperrors.KindInvalidInput, subject+" is invalid", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.KindUnavailable, subject+" store timed out", err)
	default:
		return err
	}
}
