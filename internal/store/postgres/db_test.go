package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"clinicbook/backend/internal/store/postgres/migrations"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "slot key",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: bookingsSlotStartKey}),
			want: true,
		},
		{
			name: "other unique key",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "bookings_pkey"},
			want: false,
		},
		{
			name: "check violation",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: bookingsSlotStartKey},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err, bookingsSlotStartKey); got != tt.want {
				t.Fatalf("isUniqueViolation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmbeddedMigrationsDiscovered(t *testing.T) {
	ms := migrations.Migrations.Sorted()
	if len(ms) != 2 {
		t.Fatalf("len(migrations) = %d, want 2", len(ms))
	}
	if ms[0].Name != "20240101000000" || ms[1].Name != "20240101000100" {
		t.Fatalf("migration names = %q, %q", ms[0].Name, ms[1].Name)
	}
	for _, m := range ms {
		if m.Up == nil || m.Down == nil {
			t.Fatalf("migration %s missing up or down", m.Name)
		}
	}
}

func TestPoolConfigApply(t *testing.T) {
	sqlDB, err := sql.Open("pgx", "postgres://clinicbook@127.0.0.1:1/clinicbook")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer sqlDB.Close()

	PoolConfig{MaxOpenConns: 3}.apply(sqlDB)
	if got := sqlDB.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("MaxOpenConnections = %d, want 3", got)
	}

	PoolConfig{}.apply(sqlDB)
	if got := sqlDB.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("zero config changed MaxOpenConnections to %d", got)
	}
}

func TestClose_NilHandle(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Fatalf("Close(nil) = %v", err)
	}
}
