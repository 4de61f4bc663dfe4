package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

// Cancel removes a booking owned by the caller, or any booking when the
// caller is an admin. Cancelling an already removed booking is ErrNotFound.
func (s *Service) Cancel(ctx context.Context, caller domain.Caller, bookingID uuid.UUID) error {
	if bookingID == uuid.Nil {
		return validationError("booking id is required")
	}

	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return storeError("find booking", err)
	}

	if !b.OwnedBy(caller.ID) && !caller.IsAdmin() {
		return ErrForbidden
	}

	if err := s.repo.DeleteByID(ctx, bookingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return storeError("delete booking", err)
	}
	return nil
}
