package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clinicbook/backend/internal/auth"
)

func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)
			if err != nil {
				// Render now so the logged status matches what the client gets.
				c.Error(err)
			}

			status := c.Response().Status
			evt := logger.Info()
			switch {
			case status >= 500:
				evt = logger.Error().Err(err)
			case status >= 400:
				evt = logger.Warn()
			}

			rid, _ := c.Get("request_id").(string)
			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return nil
		}
	}
}

func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)

					logger.Error().
						Str("request_id", fmt.Sprintf("%v", c.Get("request_id"))).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", string(stack[:n])).
						Msg("panic recovered")

					err = apiErr(http.StatusInternalServerError, codeServerError, "Internal server error.")
				}
			}()
			return next(c)
		}
	}
}

// RequestTimeout bounds the request context unless the caller already set a
// deadline.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := ctx.Deadline(); ok {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Authenticate requires a valid bearer token and attaches the caller to the
// request context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return apiErr(http.StatusUnauthorized, codeUnauthorized, "Not authorized, no token.")
			}
			caller, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrMissingToken) {
					return apiErr(http.StatusUnauthorized, codeUnauthorized, "Not authorized, token failed.")
				}
				return err
			}

			ctx := auth.WithCaller(c.Request().Context(), caller)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, ok := auth.CallerFromContext(c.Request().Context())
		if !ok {
			return apiErr(http.StatusUnauthorized, codeUnauthorized, "Not authorized, no token.")
		}
		if !caller.IsAdmin() {
			return apiErr(http.StatusForbidden, codeForbidden, "Not authorized as an admin.")
		}
		return next(c)
	}
}
