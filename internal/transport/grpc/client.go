package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// BookingsClient calls BookingsService using the json codec.
type BookingsClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingsClient(cc grpc.ClientConnInterface) *BookingsClient {
	return &BookingsClient{cc: cc}
}

func (c *BookingsClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *BookingsClient) ListAvailableSlots(ctx context.Context, in *ListAvailableSlotsRequest, opts ...grpc.CallOption) (*ListAvailableSlotsResponse, error) {
	out := new(ListAvailableSlotsResponse)
	if err := c.invoke(ctx, ListAvailableSlotsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingsClient) ReserveSlot(ctx context.Context, in *ReserveSlotRequest, opts ...grpc.CallOption) (*ReserveSlotResponse, error) {
	out := new(ReserveSlotResponse)
	if err := c.invoke(ctx, ReserveSlotMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingsClient) ListMyBookings(ctx context.Context, in *ListMyBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	out := new(ListBookingsResponse)
	if err := c.invoke(ctx, ListMyBookingsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingsClient) ListAllBookings(ctx context.Context, in *ListAllBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	out := new(ListBookingsResponse)
	if err := c.invoke(ctx, ListAllBookingsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingsClient) CancelBooking(ctx context.Context, in *CancelBookingRequest, opts ...grpc.CallOption) (*CancelBookingResponse, error) {
	out := new(CancelBookingResponse)
	if err := c.invoke(ctx, CancelBookingMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
