package bookings

import (
	"context"
	"strings"

	"clinicbook/backend/internal/domain"
)

func (s *Service) ListMine(ctx context.Context, callerID string) ([]domain.Booking, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, validationError("caller id is required")
	}
	rows, err := s.repo.FindByUser(ctx, callerID)
	if err != nil {
		return nil, storeError("find bookings by user", err)
	}
	return rows, nil
}

func (s *Service) ListAll(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeError("find all bookings", err)
	}
	return rows, nil
}
