package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	BookingsServiceName = "clinicbook.v1.BookingsService"

	ListAvailableSlotsMethod = "/" + BookingsServiceName + "/ListAvailableSlots"
	ReserveSlotMethod        = "/" + BookingsServiceName + "/ReserveSlot"
	ListMyBookingsMethod     = "/" + BookingsServiceName + "/ListMyBookings"
	ListAllBookingsMethod    = "/" + BookingsServiceName + "/ListAllBookings"
	CancelBookingMethod      = "/" + BookingsServiceName + "/CancelBooking"
)

type BookingsServiceServer interface {
	ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error)
	ReserveSlot(context.Context, *ReserveSlotRequest) (*ReserveSlotResponse, error)
	ListMyBookings(context.Context, *ListMyBookingsRequest) (*ListBookingsResponse, error)
	ListAllBookings(context.Context, *ListAllBookingsRequest) (*ListBookingsResponse, error)
	CancelBooking(context.Context, *CancelBookingRequest) (*CancelBookingResponse, error)
}

// UnimplementedBookingsServiceServer can be embedded to stay forward
// compatible when methods are added.
type UnimplementedBookingsServiceServer struct{}

func (UnimplementedBookingsServiceServer) ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAvailableSlots not implemented")
}

func (UnimplementedBookingsServiceServer) ReserveSlot(context.Context, *ReserveSlotRequest) (*ReserveSlotResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReserveSlot not implemented")
}

func (UnimplementedBookingsServiceServer) ListMyBookings(context.Context, *ListMyBookingsRequest) (*ListBookingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyBookings not implemented")
}

func (UnimplementedBookingsServiceServer) ListAllBookings(context.Context, *ListAllBookingsRequest) (*ListBookingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAllBookings not implemented")
}

func (UnimplementedBookingsServiceServer) CancelBooking(context.Context, *CancelBookingRequest) (*CancelBookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelBooking not implemented")
}

func RegisterBookingsServiceServer(s grpc.ServiceRegistrar, srv BookingsServiceServer) {
	s.RegisterService(&BookingsServiceDesc, srv)
}

// unaryHandler adapts a typed server method to a MethodDesc handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(BookingsServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var BookingsServiceDesc = grpc.ServiceDesc{
	ServiceName: BookingsServiceName,
	HandlerType: (*BookingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListAvailableSlots",
			Handler:    unaryHandler(ListAvailableSlotsMethod, BookingsServiceServer.ListAvailableSlots),
		},
		{
			MethodName: "ReserveSlot",
			Handler:    unaryHandler(ReserveSlotMethod, BookingsServiceServer.ReserveSlot),
		},
		{
			MethodName: "ListMyBookings",
			Handler:    unaryHandler(ListMyBookingsMethod, BookingsServiceServer.ListMyBookings),
		},
		{
			MethodName: "ListAllBookings",
			Handler:    unaryHandler(ListAllBookingsMethod, BookingsServiceServer.ListAllBookings),
		},
		{
			MethodName: "CancelBooking",
			Handler:    unaryHandler(CancelBookingMethod, BookingsServiceServer.CancelBooking),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clinicbook/v1/bookings.proto",
}
