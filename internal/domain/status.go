package domain

// Status fields were free-form strings in the legacy system. They are closed
// enumerations here; every transition site goes through CanTransitionTo so an
// impossible move is a bug at the call site, not silent data drift.

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingApproved  BookingStatus = "Approved"
	BookingDeclined  BookingStatus = "Declined"
	BookingCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingDeclined, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the one-directional booking lifecycle:
// Pending -> Approved|Declined|Cancelled, Approved -> Cancelled.
// No transition is reversible.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingApproved || next == BookingDeclined || next == BookingCancelled
	case BookingApproved:
		return next == BookingCancelled
	default:
		return false
	}
}

type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomReserved  RoomStatus = "Reserved"
	RoomOccupied  RoomStatus = "Occupied"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomReserved, RoomOccupied:
		return true
	}
	return false
}

type TenantStatus string

const (
	TenantActive   TenantStatus = "Active"
	TenantInactive TenantStatus = "Inactive"
)

func (s TenantStatus) Valid() bool {
	return s == TenantActive || s == TenantInactive
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentFailed  PaymentStatus = "Failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

// Notification type tags as used by the notification center UI.
const (
	NotifTypePayment     = "payment"
	NotifTypeBooking     = "booking"
	NotifTypeReminder    = "reminder"
	NotifTypeMaintenance = "maintenance"
)
