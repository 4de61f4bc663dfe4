package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

const usersEmailKey = "users_email_key"

type UserRepo struct {
	db bun.IDB
}

var _ store.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db bun.IDB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	m := domain.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, usersEmailKey) {
			return domain.User{}, store.ErrConflict
		}
		return domain.User{}, err
	}
	return m, nil
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.NewSelect().
		Model(&u).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	return u, notFound(err)
}

func (r *UserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var u domain.User
	err := r.db.NewSelect().
		Model(&u).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	return u, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
