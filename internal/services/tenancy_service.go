package services

import (
	"fmt"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/utils"
)

// TenancyService carries the staff-side tenant lifecycle: booking decisions,
// tenant removal and rent reminders. The approve-first path here and the
// pay-first path in ReconcileService land on the same end state, which is why
// reconciliation checks for an existing tenant instead of assuming none.
type TenancyService struct {
	Bookings      repositories.BookingRepository
	Tenants       repositories.TenantRepository
	Rooms         repositories.RoomRepository
	Notifications repositories.NotificationRepository
	Profiles      repositories.ProfileRepository

	RequestID string
}

type BookingDecision struct {
	Approve  bool
	Message  string
	CheckIn  string
	CheckOut string
}

// DecideBooking approves or declines a pending booking request.
func (s TenancyService) DecideBooking(bookingID, adminID int64, d BookingDecision) error {
	booking, err := s.Bookings.GetWithRoom(bookingID)
	if err != nil {
		return err
	}

	next := domain.BookingDeclined
	if d.Approve {
		next = domain.BookingApproved
	}
	if !booking.Status.CanTransitionTo(next) {
		return domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("cannot move from %s to %s", booking.Status, next)}
	}

	if d.Approve {
		name := "Unknown"
		if p, err := s.Profiles.GetByID(booking.Requestor); err == nil && p.FullName != "" {
			name = p.FullName
		}
		if _, err := s.Tenants.Create(models.Tenant{
			RoomID:     booking.RoomID,
			ProfileID:  booking.Requestor,
			TenantName: name,
			RentStart:  d.CheckIn,
			RentDue:    d.CheckOut,
			Status:     domain.TenantActive,
		}); err != nil {
			return domain.InternalError{Msg: "tenant creation failed", Err: err}
		}

		if err := s.Rooms.UpdateStatus(booking.RoomID, domain.RoomOccupied); err != nil {
			return domain.InternalError{Msg: "room update failed", Err: err}
		}

		if err := s.Notifications.Insert(models.Notification{
			UserID:   booking.Requestor,
			FromUser: "Landlord",
			Message:  fmt.Sprintf("Your booking for Room %s has been approved! %s", booking.Room.RoomNumber, d.Message),
			Type:     domain.NotifTypeBooking,
		}); err != nil {
			utils.LogEvent(s.RequestID, "tenancy", "approve", "notification warning: "+err.Error())
		}
	} else {
		if err := s.Notifications.Insert(models.Notification{
			UserID:   booking.Requestor,
			FromUser: "Landlord",
			Message:  fmt.Sprintf("Your booking for Room %s has been declined. %s", booking.Room.RoomNumber, d.Message),
			Type:     domain.NotifTypeBooking,
		}); err != nil {
			utils.LogEvent(s.RequestID, "tenancy", "decline", "notification warning: "+err.Error())
		}
	}

	if err := s.Bookings.Decide(bookingID, next, d.Message, adminID); err != nil {
		return domain.InternalError{Msg: "booking update failed", Err: err}
	}
	return nil
}

// RemoveTenant deactivates a tenancy and frees its room. Historical payment
// records are left alone.
func (s TenancyService) RemoveTenant(tenantID int64) error {
	tenant, err := s.Tenants.GetByID(tenantID)
	if err != nil {
		return err
	}
	if tenant.Status != domain.TenantActive {
		return domain.ConflictError{Resource: "tenant", Msg: "already inactive"}
	}

	if err := s.Tenants.SetStatus(tenantID, domain.TenantInactive); err != nil {
		return domain.InternalError{Msg: "tenant update failed", Err: err}
	}

	if err := s.Rooms.UpdateStatus(tenant.RoomID, domain.RoomAvailable); err != nil {
		return domain.InternalError{Msg: "room update failed", Err: err}
	}

	if err := s.Notifications.Insert(models.Notification{
		UserID:   tenant.ProfileID,
		FromUser: "Landlord",
		Message:  "Your tenancy has been terminated. Please contact the landlord for more details.",
		Type:     domain.NotifTypeMaintenance,
	}); err != nil {
		utils.LogEvent(s.RequestID, "tenancy", "remove", "notification warning: "+err.Error())
	}
	return nil
}

// SendReminder delivers a rent reminder from the landlord to a tenant.
func (s TenancyService) SendReminder(tenantID int64, message string) error {
	message = utils.TrimOrEmpty(message)
	if message == "" {
		return domain.ValidationError{Field: "message", Msg: "message is required"}
	}

	tenant, err := s.Tenants.GetByID(tenantID)
	if err != nil {
		return err
	}

	return s.Notifications.Insert(models.Notification{
		UserID:   tenant.ProfileID,
		FromUser: "Landlord",
		Message:  message,
		Type:     domain.NotifTypeReminder,
	})
}
