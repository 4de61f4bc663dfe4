package httpapi

import (
	"clinicbook/backend/internal/domain"
)

type slotResponse struct {
	SlotID string `json:"slotId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type bookingResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
	SlotID        string `json:"slotId"`
	SlotStartTime string `json:"slotStartTime"`
	SlotEndTime   string `json:"slotEndTime"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type userResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type bookRequest struct {
	SlotID string `json:"slotId"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toSlotResponses(slots []domain.Slot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{
			SlotID: s.ID,
			Start:  domain.CanonicalInstant(s.Start),
			End:    domain.CanonicalInstant(s.End),
		})
	}
	return out
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID.String(),
		UserID:        b.UserID,
		UserName:      b.UserName,
		SlotID:        b.SlotID(),
		SlotStartTime: domain.CanonicalInstant(b.SlotStartTime),
		SlotEndTime:   domain.CanonicalInstant(b.SlotEndTime),
		CreatedAt:     domain.CanonicalInstant(b.CreatedAt),
		UpdatedAt:     domain.CanonicalInstant(b.UpdatedAt),
	}
}

func toBookingResponses(rows []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email, Role: u.Role}
}
