package bookings

import (
	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

const DefaultMaxRangeDays = 62

type Options struct {
	// StrictGrid rejects reservations whose start is not a slot the
	// schedule would generate. When off, any valid instant is accepted.
	StrictGrid bool
	// MaxRangeDays bounds availability queries. Zero means DefaultMaxRangeDays.
	MaxRangeDays int
}

// Service composes the slot generator with the booking store. It keeps no
// mutable state; every request goes straight to the repository.
type Service struct {
	repo     store.BookingRepository
	schedule domain.Schedule
	opts     Options
}

func NewService(repo store.BookingRepository, schedule domain.Schedule, opts Options) *Service {
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = DefaultMaxRangeDays
	}
	return &Service{repo: repo, schedule: schedule, opts: opts}
}

func (s *Service) Schedule() domain.Schedule {
	return s.schedule
}
