package bookings

import (
	"context"
	"fmt"
	"strings"

	"clinicbook/backend/internal/domain"
)

// ListAvailable returns the schedule's slots for the closed day range
// [from, to] minus every slot that already has a booking. The result is
// advisory: a listed slot may be taken before the caller reserves it.
func (s *Service) ListAvailable(ctx context.Context, from, to string) ([]domain.Slot, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, rangeError("from and to are required")
	}

	loc := s.schedule.Zone()
	startDay, err := domain.ParseDay(from, loc)
	if err != nil {
		return nil, rangeError("from must be a date (YYYY-MM-DD)")
	}
	endDay, err := domain.ParseDay(to, loc)
	if err != nil {
		return nil, rangeError("to must be a date (YYYY-MM-DD)")
	}

	days := domain.DaysBetween(startDay, endDay)
	if days == 0 {
		return []domain.Slot{}, nil
	}
	if days > s.opts.MaxRangeDays {
		return nil, rangeError(fmt.Sprintf("range must not exceed %d days", s.opts.MaxRangeDays))
	}

	windowStart, windowEnd := domain.DayRange(startDay, endDay)
	booked, err := s.repo.FindInRange(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, storeError("find bookings in range", err)
	}

	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.SlotStartTime.UTC().UnixNano()] = struct{}{}
	}

	candidates := s.schedule.GenerateSlots(startDay, endDay)
	out := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot.Start.UnixNano()]; ok {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}
