package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
)

// BookingRepository owns persisted reservations. CreateIfAbsent is the only
// path that creates a booking and must rely on a store-level uniqueness
// guarantee on the slot start time, never on a prior read.
type BookingRepository interface {
	// FindInRange returns bookings whose slot start lies in [start, end].
	FindInRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	FindAll(ctx context.Context) ([]domain.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	// CreateIfAbsent persists candidate or fails with ErrSlotTaken when a
	// booking for the same slot start already exists.
	CreateIfAbsent(ctx context.Context, candidate domain.Booking) (domain.Booking, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	// CreateUser fails with ErrConflict when the email is already registered.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}
