// Package memory is an in-process store for single-node deployments and
// tests. Slot uniqueness is enforced by an atomic LoadOrStore on the start
// instant, the same guarantee the postgres unique index gives.
package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

type BookingRepo struct {
	bySlot *xsync.MapOf[int64, domain.Booking]
	byID   *xsync.MapOf[uuid.UUID, int64]
	now    func() time.Time
}

var _ store.BookingRepository = (*BookingRepo)(nil)

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{
		bySlot: xsync.NewMapOf[int64, domain.Booking](),
		byID:   xsync.NewMapOf[uuid.UUID, int64](),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func slotKey(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func (r *BookingRepo) FindInRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lo, hi := slotKey(start), slotKey(end)
	return r.collect(func(key int64, _ domain.Booking) bool {
		return key >= lo && key <= hi
	}), nil
}

func (r *BookingRepo) FindByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.collect(func(_ int64, b domain.Booking) bool {
		return b.UserID == userID
	}), nil
}

func (r *BookingRepo) FindAll(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.collect(func(int64, domain.Booking) bool { return true }), nil
}

func (r *BookingRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, err
	}
	key, ok := r.byID.Load(id)
	if !ok {
		return domain.Booking{}, store.ErrNotFound
	}
	b, ok := r.bySlot.Load(key)
	if !ok || b.ID != id {
		return domain.Booking{}, store.ErrNotFound
	}
	return b, nil
}

func (r *BookingRepo) CreateIfAbsent(ctx context.Context, candidate domain.Booking) (domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, err
	}
	b := candidate
	b.SlotStartTime = b.SlotStartTime.UTC()
	b.SlotEndTime = b.SlotEndTime.UTC()
	if err := b.Stamp(r.now()); err != nil {
		return domain.Booking{}, err
	}

	key := slotKey(b.SlotStartTime)
	if _, loaded := r.bySlot.LoadOrStore(key, b); loaded {
		return domain.Booking{}, store.ErrSlotTaken
	}
	r.byID.Store(b.ID, key)
	return b, nil
}

func (r *BookingRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := r.byID.LoadAndDelete(id)
	if !ok {
		return store.ErrNotFound
	}
	r.bySlot.Delete(key)
	return nil
}

func (r *BookingRepo) collect(keep func(key int64, b domain.Booking) bool) []domain.Booking {
	out := make([]domain.Booking, 0)
	r.bySlot.Range(func(key int64, b domain.Booking) bool {
		if keep(key, b) {
			out = append(out, b)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].SlotStartTime.Before(out[j].SlotStartTime)
	})
	return out
}
