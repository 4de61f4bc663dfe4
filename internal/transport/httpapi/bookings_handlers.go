package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinicbook/backend/internal/auth"
	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/bookings"
)

func (s *Server) listSlots(c echo.Context) error {
	slots, err := s.bookings.ListAvailable(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSlotResponses(slots))
}

func (s *Server) book(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return apiErr(http.StatusBadRequest, codeBadRequest, "Request body must be JSON.")
	}
	if req.SlotID == "" {
		return apiErr(http.StatusBadRequest, codeBadRequest, "`slotId` is required.")
	}

	b, err := s.bookings.Reserve(c.Request().Context(), bookings.ReserveInput{
		CallerID:   caller.ID,
		CallerName: caller.Name,
		SlotID:     req.SlotID,
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("booking_id", b.ID.String()).
		Str("user_id", b.UserID).
		Str("slot_id", b.SlotID()).
		Msg("booking created")
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (s *Server) myBookings(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	rows, err := s.bookings.ListMine(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponses(rows))
}

func (s *Server) allBookings(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	rows, err := s.bookings.ListAll(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponses(rows))
}

func (s *Server) cancelBooking(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		return apiErr(http.StatusBadRequest, codeInvalidID, "Booking id must be a UUID.")
	}

	if err := s.bookings.Cancel(c.Request().Context(), caller, id); err != nil {
		return err
	}

	s.log.Info().
		Str("booking_id", id.String()).
		Str("caller_id", caller.ID).
		Str("caller_role", string(caller.Role)).
		Msg("booking cancelled")
	return c.JSON(http.StatusOK, messageResponse{Message: "Booking cancelled."})
}

func callerFrom(c echo.Context) (domain.Caller, error) {
	caller, ok := auth.CallerFromContext(c.Request().Context())
	if !ok {
		return domain.Caller{}, apiErr(http.StatusUnauthorized, codeUnauthorized, "Not authorized, no token.")
	}
	return caller, nil
}
