package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

func booking(userID string, start time.Time) domain.Booking {
	return domain.Booking{
		UserID:        userID,
		UserName:      "name-" + userID,
		SlotStartTime: start,
		SlotEndTime:   start.Add(30 * time.Minute),
	}
}

func TestBookingRepo_CreateIfAbsentRejectsDuplicateStart(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	first, err := repo.CreateIfAbsent(ctx, booking("u1", start))
	if err != nil {
		t.Fatalf("CreateIfAbsent error: %v", err)
	}
	if first.ID == uuid.Nil || first.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set: %+v", first)
	}

	// Same instant expressed in another zone is the same slot.
	_, err = repo.CreateIfAbsent(ctx, booking("u2", start.In(time.FixedZone("X", 2*3600))))
	if !errors.Is(err, store.ErrSlotTaken) {
		t.Fatalf("err = %v, want %v", err, store.ErrSlotTaken)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 1 || all[0].UserID != "u1" {
		t.Fatalf("FindAll = %+v, want only u1 booking", all)
	}
}

func TestBookingRepo_ConcurrentCreateHasSingleWinner(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	const callers = 64
	var (
		wg    sync.WaitGroup
		ready = make(chan struct{})
		wins  atomic.Int32
		taken atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-ready
			_, err := repo.CreateIfAbsent(ctx, booking(fmt.Sprintf("u%d", i), start))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, store.ErrSlotTaken):
				taken.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(ready)
	wg.Wait()

	if wins.Load() != 1 || taken.Load() != callers-1 {
		t.Fatalf("wins=%d taken=%d, want 1 and %d", wins.Load(), taken.Load(), callers-1)
	}
	rows, _ := repo.FindInRange(ctx, start, start)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
}

func TestBookingRepo_QueriesAreOrderedAndFiltered(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	for _, in := range []domain.Booking{
		booking("u1", day.Add(15*time.Hour)),
		booking("u2", day.Add(9*time.Hour)),
		booking("u1", day.Add(10*time.Hour)),
		booking("u1", day.Add(33*time.Hour)),
	} {
		if _, err := repo.CreateIfAbsent(ctx, in); err != nil {
			t.Fatalf("CreateIfAbsent error: %v", err)
		}
	}

	inRange, err := repo.FindInRange(ctx, day.Add(9*time.Hour), day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("FindInRange error: %v", err)
	}
	if len(inRange) != 3 {
		t.Fatalf("len(inRange) = %d, want 3 (bounds inclusive)", len(inRange))
	}

	mine, err := repo.FindByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("FindByUser error: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("len(mine) = %d, want 3", len(mine))
	}
	for i := 1; i < len(mine); i++ {
		if !mine[i-1].SlotStartTime.Before(mine[i].SlotStartTime) {
			t.Fatalf("FindByUser not ascending: %v then %v", mine[i-1].SlotStartTime, mine[i].SlotStartTime)
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 4 || all[0].UserID != "u2" {
		t.Fatalf("FindAll = %+v, want 4 rows starting with u2", all)
	}
}

func TestBookingRepo_DeleteFreesSlotOnce(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()
	start := time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)

	b, err := repo.CreateIfAbsent(ctx, booking("u1", start))
	if err != nil {
		t.Fatalf("CreateIfAbsent error: %v", err)
	}

	got, err := repo.FindByID(ctx, b.ID)
	if err != nil || got.ID != b.ID {
		t.Fatalf("FindByID = %+v, %v", got, err)
	}

	if err := repo.DeleteByID(ctx, b.ID); err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if err := repo.DeleteByID(ctx, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second DeleteByID err = %v, want %v", err, store.ErrNotFound)
	}
	if _, err := repo.FindByID(ctx, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("FindByID err = %v, want %v", err, store.ErrNotFound)
	}

	if _, err := repo.CreateIfAbsent(ctx, booking("u2", start)); err != nil {
		t.Fatalf("rebooking freed slot: %v", err)
	}
}

func TestBookingRepo_HonorsCanceledContext(t *testing.T) {
	repo := NewBookingRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.CreateIfAbsent(ctx, booking("u1", time.Now())); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want %v", err, context.Canceled)
	}
}

func TestUserRepo_EmailIsUniqueCaseInsensitive(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, domain.User{Name: "Ada", Email: " Ada@Example.com", Role: domain.RolePatient})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email = %q", u.Email)
	}

	if _, err := repo.CreateUser(ctx, domain.User{Name: "Other", Email: "ADA@example.com"}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("err = %v, want %v", err, store.ErrConflict)
	}

	byID, err := repo.FindUserByID(ctx, u.ID)
	if err != nil || byID.Name != "Ada" {
		t.Fatalf("FindUserByID = %+v, %v", byID, err)
	}
	if _, err := repo.FindUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, store.ErrNotFound)
	}
}
