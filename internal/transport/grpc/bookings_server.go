package grpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinicbook/backend/internal/auth"
	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/bookings"
)

type BookingsServer struct {
	UnimplementedBookingsServiceServer

	svc bookingsService
	log zerolog.Logger
}

type bookingsService interface {
	ListAvailable(ctx context.Context, from, to string) ([]domain.Slot, error)
	Reserve(ctx context.Context, in bookings.ReserveInput) (domain.Booking, error)
	ListMine(ctx context.Context, callerID string) ([]domain.Booking, error)
	ListAll(ctx context.Context, caller domain.Caller) ([]domain.Booking, error)
	Cancel(ctx context.Context, caller domain.Caller, bookingID uuid.UUID) error
}

func NewBookingsServer(svc bookingsService, log zerolog.Logger) *BookingsServer {
	return &BookingsServer{
		svc: svc,
		log: log.With().Str("component", "grpc.bookings").Logger(),
	}
}

func (s *BookingsServer) ListAvailableSlots(ctx context.Context, req *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error) {
	log := s.log.With().Str("rpc", "ListAvailableSlots").Logger()

	if req == nil {
		log.Warn().Str("reason", "nil_request").Msg("invalid request")
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	slots, err := s.svc.ListAvailable(ctx, req.From, req.To)
	if err != nil {
		return nil, s.statusFor(log, err, "slots list failed")
	}

	out := make([]Slot, 0, len(slots))
	for _, sl := range slots {
		out = append(out, Slot{
			SlotID: sl.ID,
			Start:  domain.CanonicalInstant(sl.Start),
			End:    domain.CanonicalInstant(sl.End),
		})
	}

	log.Debug().Str("from", req.From).Str("to", req.To).Int("count", len(out)).Msg("slots listed")
	return &ListAvailableSlotsResponse{Slots: out}, nil
}

func (s *BookingsServer) ReserveSlot(ctx context.Context, req *ReserveSlotRequest) (*ReserveSlotResponse, error) {
	log := s.log.With().Str("rpc", "ReserveSlot").Logger()

	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || req.SlotID == "" {
		log.Warn().Str("reason", "missing_slot_id").Str("user_id", caller.ID).Msg("invalid request")
		return nil, status.Error(codes.InvalidArgument, "slot_id is required")
	}

	b, err := s.svc.Reserve(ctx, bookings.ReserveInput{
		CallerID:   caller.ID,
		CallerName: caller.Name,
		SlotID:     req.SlotID,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrSlotTaken) {
			log.Info().Str("user_id", caller.ID).Str("slot_id", req.SlotID).Msg("slot already booked")
		}
		return nil, s.statusFor(log, err, "booking create failed")
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("user_id", b.UserID).
		Str("slot_id", b.SlotID()).
		Msg("booking created")

	pb := toWireBooking(b)
	return &ReserveSlotResponse{Booking: &pb}, nil
}

func (s *BookingsServer) ListMyBookings(ctx context.Context, req *ListMyBookingsRequest) (*ListBookingsResponse, error) {
	log := s.log.With().Str("rpc", "ListMyBookings").Logger()

	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.svc.ListMine(ctx, caller.ID)
	if err != nil {
		return nil, s.statusFor(log, err, "bookings list failed")
	}

	log.Debug().Str("user_id", caller.ID).Int("count", len(rows)).Msg("bookings listed")
	return &ListBookingsResponse{Bookings: toWireBookings(rows)}, nil
}

func (s *BookingsServer) ListAllBookings(ctx context.Context, req *ListAllBookingsRequest) (*ListBookingsResponse, error) {
	log := s.log.With().Str("rpc", "ListAllBookings").Logger()

	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.svc.ListAll(ctx, caller)
	if err != nil {
		return nil, s.statusFor(log, err, "bookings list failed")
	}

	log.Debug().Str("user_id", caller.ID).Int("count", len(rows)).Msg("all bookings listed")
	return &ListBookingsResponse{Bookings: toWireBookings(rows)}, nil
}

func (s *BookingsServer) CancelBooking(ctx context.Context, req *CancelBookingRequest) (*CancelBookingResponse, error) {
	log := s.log.With().Str("rpc", "CancelBooking").Logger()

	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		log.Warn().Str("reason", "nil_request").Msg("invalid request")
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := uuid.Parse(req.BookingID)
	if err != nil || id == uuid.Nil {
		log.Warn().Str("reason", "invalid_uuid").Str("user_id", caller.ID).Msg("invalid request")
		return nil, status.Error(codes.InvalidArgument, "booking_id must be a UUID")
	}

	if err := s.svc.Cancel(ctx, caller, id); err != nil {
		return nil, s.statusFor(log, err, "booking cancel failed")
	}

	log.Info().Str("booking_id", id.String()).Str("user_id", caller.ID).Msg("booking cancelled")
	return &CancelBookingResponse{}, nil
}

// statusFor maps service errors to gRPC status codes. Only unexpected
// failures are logged at error level.
func (s *BookingsServer) statusFor(log zerolog.Logger, err error, failMsg string) error {
	var vErr *bookings.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Warn().Err(err).Msg("invalid request")
		return status.Error(codes.InvalidArgument, vErr.Error())
	case errors.Is(err, bookings.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, bookings.ErrSlotTaken):
		return status.Error(codes.AlreadyExists, "This slot has already been booked.")
	case errors.Is(err, bookings.ErrNotFound):
		return status.Error(codes.NotFound, "booking not found")
	case errors.Is(err, bookings.ErrForbidden):
		return status.Error(codes.PermissionDenied, "not allowed")
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("deadline exceeded")
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, bookings.ErrStoreUnavailable):
		log.Error().Err(err).Msg(failMsg)
		return status.Error(codes.Unavailable, "booking store unavailable")
	}
	log.Error().Err(err).Msg(failMsg)
	return status.Error(codes.Internal, "internal error")
}

func requireCaller(ctx context.Context) (domain.Caller, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return domain.Caller{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	return caller, nil
}

func toWireBooking(b domain.Booking) Booking {
	return Booking{
		ID:            b.ID.String(),
		UserID:        b.UserID,
		UserName:      b.UserName,
		SlotID:        b.SlotID(),
		SlotStartTime: domain.CanonicalInstant(b.SlotStartTime),
		SlotEndTime:   domain.CanonicalInstant(b.SlotEndTime),
		CreatedAt:     domain.CanonicalInstant(b.CreatedAt),
	}
}

func toWireBookings(rows []domain.Booking) []Booking {
	out := make([]Booking, 0, len(rows))
	for _, b := range rows {
		out = append(out, toWireBooking(b))
	}
	return out
}
