// Package httpapi serves the clinic booking API over HTTP with echo. Routes
// live under /api and keep the JSON shapes the web client already consumes.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/accounts"
	"clinicbook/backend/internal/service/bookings"
)

type BookingService interface {
	ListAvailable(ctx context.Context, from, to string) ([]domain.Slot, error)
	Reserve(ctx context.Context, in bookings.ReserveInput) (domain.Booking, error)
	ListMine(ctx context.Context, callerID string) ([]domain.Booking, error)
	ListAll(ctx context.Context, caller domain.Caller) ([]domain.Booking, error)
	Cancel(ctx context.Context, caller domain.Caller, bookingID uuid.UUID) error
}

type AccountService interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (accounts.Session, error)
}

type TokenVerifier interface {
	Verify(token string) (domain.Caller, error)
}

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// RateLimit is requests per second per client IP on /api. Zero disables it.
	RateLimit float64
	RateBurst int
	// Ready backs /health. Nil means always healthy.
	Ready func(ctx context.Context) error
}

type Server struct {
	bookings BookingService
	accounts AccountService
	verifier TokenVerifier
	opts     Options
	log      zerolog.Logger
}

func NewServer(b BookingService, a AccountService, v TokenVerifier, opts Options, log zerolog.Logger) *Server {
	return &Server{
		bookings: b,
		accounts: a,
		verifier: v,
		opts:     opts,
		log:      log.With().Str("component", "http").Logger(),
	}
}

// Handler builds the echo instance with middleware and routes attached.
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, rid string) {
			c.Set("request_id", rid)
		},
	}))
	e.Use(Logger(s.log))
	e.Use(Recovery(s.log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins(s.opts.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(RequestTimeout(s.opts.RequestTimeout))

	e.GET("/health", s.health)

	api := e.Group("/api")
	if s.opts.RateLimit > 0 {
		api.Use(s.rateLimiter())
	}

	authn := Authenticate(s.verifier)

	api.POST("/register", s.register)
	api.POST("/login", s.login)

	api.GET("/slots", s.listSlots)
	api.POST("/book", s.book, authn)
	api.GET("/my-bookings", s.myBookings, authn)
	api.GET("/all-bookings", s.allBookings, authn, RequireAdmin)
	api.DELETE("/bookings/:id", s.cancelBooking, authn)

	return e
}

func (s *Server) rateLimiter() echo.MiddlewareFunc {
	burst := s.opts.RateBurst
	if burst <= 0 {
		burst = int(s.opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.opts.RateLimit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apiErr(http.StatusForbidden, codeForbidden, "Unable to identify client.")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apiErr(http.StatusTooManyRequests, codeTooManyRequests, "Too many requests, please try again later.")
		},
	})
}

func (s *Server) health(c echo.Context) error {
	if s.opts.Ready != nil {
		if err := s.opts.Ready(c.Request().Context()); err != nil {
			s.log.Warn().Err(err).Msg("health check failed")
			return c.String(http.StatusServiceUnavailable, "API is unavailable")
		}
	}
	return c.String(http.StatusOK, "API is healthy and running!")
}

func corsOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
