package services

import (
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/utils"
)

type BookingService struct {
	Bookings repositories.BookingRepository
	Rooms    repositories.RoomRepository

	RequestID string
}

type BookingRequestInput struct {
	RoomID       int64  `json:"room_id"`
	ContactPhone string `json:"contact_phone"`
	Message      string `json:"message"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
}

// CreateRequest files a Pending booking request for an available room.
func (s BookingService) CreateRequest(requestor int64, in BookingRequestInput) (int64, error) {
	if in.RoomID <= 0 {
		return 0, domain.ValidationError{Field: "room_id", Msg: "invalid id"}
	}

	room, err := s.Rooms.GetByID(in.RoomID)
	if err != nil {
		return 0, err
	}
	if room.Status != domain.RoomAvailable {
		return 0, domain.ConflictError{Resource: "room", Msg: "room is not available"}
	}

	id, err := s.Bookings.Create(models.BookingRequest{
		RoomID:       in.RoomID,
		Requestor:    requestor,
		Status:       domain.BookingPending,
		Message:      utils.NormalizeSpace(in.Message),
		ContactPhone: utils.TrimOrEmpty(in.ContactPhone),
		CheckIn:      utils.TrimOrEmpty(in.CheckIn),
		CheckOut:     utils.TrimOrEmpty(in.CheckOut),
	})
	if err != nil {
		return 0, domain.InternalError{Msg: "booking save failed", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create", "booking request filed for room "+room.RoomNumber)
	return id, nil
}

// CancelRequest cancels the caller's own booking. The room row is deliberately
// left untouched; an occupied room is freed only by tenant removal.
func (s BookingService) CancelRequest(bookingID, requestor int64) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	return s.Bookings.Cancel(bookingID, requestor)
}
