package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

type UserRepo struct {
	byEmail *xsync.MapOf[string, domain.User]
	byID    *xsync.MapOf[uuid.UUID, string]
}

var _ store.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byEmail: xsync.NewMapOf[string, domain.User](),
		byID:    xsync.NewMapOf[uuid.UUID, string](),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	u := user
	u.Email = normalizeEmail(u.Email)
	if err := u.Stamp(time.Now().UTC()); err != nil {
		return domain.User{}, err
	}
	if _, loaded := r.byEmail.LoadOrStore(u.Email, u); loaded {
		return domain.User{}, store.ErrConflict
	}
	r.byID.Store(u.ID, u.Email)
	return u, nil
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	u, ok := r.byEmail.Load(normalizeEmail(email))
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	email, ok := r.byID.Load(id)
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.FindUserByEmail(ctx, email)
}
