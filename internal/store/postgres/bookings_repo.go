package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

const bookingsSlotStartKey = "bookings_slot_start_time_key"

type BookingRepo struct {
	db bun.IDB
}

var _ store.BookingRepository = (*BookingRepo)(nil)

func NewBookingRepo(db bun.IDB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) FindInRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	rows := make([]domain.Booking, 0)
	err := r.db.NewSelect().
		Model(&rows).
		Where("slot_start_time >= ?", start.UTC()).
		Where("slot_start_time <= ?", end.UTC()).
		OrderExpr("slot_start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) FindByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows := make([]domain.Booking, 0)
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("slot_start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) FindAll(ctx context.Context) ([]domain.Booking, error) {
	rows := make([]domain.Booking, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("slot_start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.NewSelect().
		Model(&b).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, store.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return b, nil
}

// CreateIfAbsent is a single INSERT. A concurrent or earlier booking for the
// same start instant trips bookings_slot_start_time_key and is reported as
// store.ErrSlotTaken; the row set is left unchanged.
func (r *BookingRepo) CreateIfAbsent(ctx context.Context, candidate domain.Booking) (domain.Booking, error) {
	m := domain.Booking{
		ID:            candidate.ID,
		UserID:        candidate.UserID,
		UserName:      candidate.UserName,
		SlotStartTime: candidate.SlotStartTime.UTC(),
		SlotEndTime:   candidate.SlotEndTime.UTC(),
		CreatedAt:     candidate.CreatedAt,
		UpdatedAt:     candidate.UpdatedAt,
	}

	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, bookingsSlotStartKey) {
			return domain.Booking{}, store.ErrSlotTaken
		}
		return domain.Booking{}, err
	}
	return m, nil
}

func (r *BookingRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Booking)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
