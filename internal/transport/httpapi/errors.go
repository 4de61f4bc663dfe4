package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"clinicbook/backend/internal/service/accounts"
	"clinicbook/backend/internal/service/bookings"
)

const (
	codeBadRequest         = "BAD_REQUEST"
	codeInvalidID          = "INVALID_ID"
	codeSlotTaken          = "SLOT_TAKEN"
	codeNotFound           = "NOT_FOUND"
	codeForbidden          = "FORBIDDEN"
	codeUnauthorized       = "UNAUTHORIZED"
	codeUserExists         = "USER_EXISTS"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeTooManyRequests    = "TOO_MANY_REQUESTS"
	codeTimeout            = "TIMEOUT"
	codeServerError        = "SERVER_ERROR"
)

// apiError is rendered as {"error":{"code","message"}}.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *apiError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *apiError) Unwrap() error {
	return e.cause
}

type errorBody struct {
	Error *apiError `json:"error"`
}

func apiErr(status int, code, message string) *apiError {
	return &apiError{Status: status, Code: code, Message: message}
}

// toAPIError classifies service errors. Unknown errors become SERVER_ERROR
// with the cause kept for logging only.
func toAPIError(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}

	var bv *bookings.ValidationError
	var av *accounts.ValidationError
	switch {
	case errors.As(err, &bv):
		return apiErr(http.StatusBadRequest, codeBadRequest, bv.Error())
	case errors.As(err, &av):
		return apiErr(http.StatusBadRequest, codeBadRequest, av.Error())
	case errors.Is(err, bookings.ErrInvalidRequest), errors.Is(err, accounts.ErrInvalidRequest):
		return apiErr(http.StatusBadRequest, codeBadRequest, "Invalid request.")
	case errors.Is(err, bookings.ErrSlotTaken):
		return apiErr(http.StatusConflict, codeSlotTaken, "This slot has already been booked.")
	case errors.Is(err, bookings.ErrNotFound):
		return apiErr(http.StatusNotFound, codeNotFound, "Booking not found.")
	case errors.Is(err, bookings.ErrForbidden):
		return apiErr(http.StatusForbidden, codeForbidden, "You are not allowed to do that.")
	case errors.Is(err, accounts.ErrUserExists):
		return apiErr(http.StatusBadRequest, codeUserExists, "User already exists.")
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return apiErr(http.StatusUnauthorized, codeInvalidCredentials, "Invalid email or password.")
	case errors.Is(err, context.DeadlineExceeded):
		return &apiError{Status: http.StatusGatewayTimeout, Code: codeTimeout, Message: "Request timed out.", cause: err}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return httpErrorToAPI(he)
	}
	return &apiError{Status: http.StatusInternalServerError, Code: codeServerError, Message: "Internal server error.", cause: err}
}

func httpErrorToAPI(he *echo.HTTPError) *apiError {
	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		msg = m
	}
	code := codeServerError
	switch he.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		code = codeBadRequest
	case http.StatusUnauthorized:
		code = codeUnauthorized
	case http.StatusForbidden:
		code = codeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		code = codeNotFound
	case http.StatusTooManyRequests:
		code = codeTooManyRequests
	}
	return &apiError{Status: he.Code, Code: code, Message: msg, cause: he}
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	ae := toAPIError(err)
	if ae.Status >= http.StatusInternalServerError && ae.cause != nil {
		rid, _ := c.Get("request_id").(string)
		s.log.Error().Err(ae.cause).Str("request_id", rid).Str("path", c.Request().URL.Path).Msg("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(ae.Status)
	} else {
		writeErr = c.JSON(ae.Status, errorBody{Error: ae})
	}
	if writeErr != nil {
		s.log.Warn().Err(writeErr).Msg("write error response failed")
	}
}
