package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinicbook/backend/internal/domain"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

const DefaultTokenTTL = 24 * time.Hour

// Claims mirrors the subject as "id" for clients that read it directly.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"id,omitempty"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// Tokens issues and verifies HS256 access tokens carrying a caller identity.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration, issuer string) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}, nil
}

func (t *Tokens) Issue(caller domain.Caller) (string, error) {
	if caller.ID == "" {
		return "", errors.New("caller id is required")
	}
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID: caller.ID,
		Name:   caller.Name,
		Role:   caller.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) Verify(token string) (domain.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Caller{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return domain.Caller{}, ErrInvalidToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return domain.Caller{}, ErrInvalidToken
	}

	return domain.Caller{ID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 1 && strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
