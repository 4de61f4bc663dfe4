package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStoreUnavailable   = errors.New("user store unavailable")
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

type TokenIssuer interface {
	Issue(caller domain.Caller) (string, error)
}

type Options struct {
	// HashCost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	HashCost int
}

type Service struct {
	repo   store.UserRepository
	tokens TokenIssuer
	cost   int
}

func NewService(repo store.UserRepository, tokens TokenIssuer, opts Options) *Service {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, cost: cost}
}

type Session struct {
	Token string
	User  domain.User
}

func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	return s.create(ctx, name, email, password, domain.RolePatient)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, &ValidationError{msg: "Please provide email and password."}
	}

	u, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find user: %w: %w", ErrStoreUnavailable, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Caller())
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, User: u}, nil
}

// EnsureAdmin creates the admin account when no user holds the email yet.
// The returned bool reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if normalizeEmail(email) == "" {
		return false, nil
	}

	_, err := s.repo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, fmt.Errorf("find admin: %w: %w", ErrStoreUnavailable, err)
	}

	if _, err := s.create(ctx, name, email, password, domain.RoleAdmin); err != nil {
		if errors.Is(err, ErrUserExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) create(ctx context.Context, name, email, password string, role domain.Role) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return domain.User{}, &ValidationError{msg: "Please provide name, email, and password."}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.User{}, &ValidationError{msg: "email is not a valid address"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.User{}, &ValidationError{msg: "password is too long"}
		}
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, fmt.Errorf("create user: %w: %w", ErrStoreUnavailable, err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
