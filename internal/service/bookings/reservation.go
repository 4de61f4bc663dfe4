package bookings

import (
	"context"
	"errors"
	"strings"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

type ReserveInput struct {
	CallerID   string
	CallerName string
	// SlotID is the canonical start instant of the requested slot.
	SlotID string
}

// Reserve books one slot for the caller. The first writer for a start
// instant wins; everyone after gets ErrSlotTaken. There is no retry.
func (s *Service) Reserve(ctx context.Context, in ReserveInput) (domain.Booking, error) {
	callerID := strings.TrimSpace(in.CallerID)
	if callerID == "" {
		return domain.Booking{}, validationError("caller id is required")
	}
	slotID := strings.TrimSpace(in.SlotID)
	if slotID == "" {
		return domain.Booking{}, validationError("slotId is required")
	}
	start, err := domain.ParseInstant(slotID)
	if err != nil {
		return domain.Booking{}, validationError("slotId must be an RFC 3339 timestamp")
	}
	if s.opts.StrictGrid && !s.schedule.Aligned(start) {
		return domain.Booking{}, validationError("slotId is not a bookable slot")
	}

	candidate := domain.Booking{
		UserID:        callerID,
		UserName:      strings.TrimSpace(in.CallerName),
		SlotStartTime: start,
		SlotEndTime:   start.Add(s.schedule.SlotDuration),
	}

	created, err := s.repo.CreateIfAbsent(ctx, candidate)
	if err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			return domain.Booking{}, ErrSlotTaken
		}
		return domain.Booking{}, storeError("create booking", err)
	}
	return created, nil
}
