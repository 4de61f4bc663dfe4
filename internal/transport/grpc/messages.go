package grpc

type Slot struct {
	SlotID string `json:"slotId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type Booking struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
	SlotID        string `json:"slotId"`
	SlotStartTime string `json:"slotStartTime"`
	SlotEndTime   string `json:"slotEndTime"`
	CreatedAt     string `json:"createdAt"`
}

type ListAvailableSlotsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ListAvailableSlotsResponse struct {
	Slots []Slot `json:"slots"`
}

type ReserveSlotRequest struct {
	SlotID string `json:"slotId"`
}

type ReserveSlotResponse struct {
	Booking *Booking `json:"booking"`
}

type ListMyBookingsRequest struct{}

type ListAllBookingsRequest struct{}

type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

type CancelBookingRequest struct {
	BookingID string `json:"bookingId"`
}

type CancelBookingResponse struct{}
