package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Booking is a persisted reservation of one slot. UserName is a snapshot of
// the caller's display name when the booking was made and is not kept in
// sync with later profile changes.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	UserID        string    `bun:"user_id,notnull"`
	UserName      string    `bun:"user_name,notnull"`
	SlotStartTime time.Time `bun:"slot_start_time,notnull"`
	SlotEndTime   time.Time `bun:"slot_end_time,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

func (b *Booking) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		return b.Stamp(time.Now().UTC())
	}
	return nil
}

// Stamp assigns an id and creation timestamps where they are still unset.
func (b *Booking) Stamp(now time.Time) error {
	if b.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = id
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
	return nil
}

// OwnedBy reports whether userID made the booking.
func (b Booking) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// SlotID is the canonical identity of the reserved slot.
func (b Booking) SlotID() string {
	return CanonicalInstant(b.SlotStartTime)
}
