package domain

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingApproved, BookingDeclined, BookingCancelled}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingPending: {
			BookingApproved:  true,
			BookingDeclined:  true,
			BookingCancelled: true,
		},
		BookingApproved: {
			BookingCancelled: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestBookingStatusValid(t *testing.T) {
	if !BookingPending.Valid() {
		t.Error("Pending should be valid")
	}
	if BookingStatus("approved").Valid() {
		t.Error("lowercase variant should be rejected")
	}
	if BookingStatus("").Valid() {
		t.Error("empty status should be rejected")
	}
}

func TestPaymentStatusValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPaid, PaymentPending, PaymentFailed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if PaymentStatus("Refunded").Valid() {
		t.Error("Refunded is not a known status")
	}
}

func TestRoomAndTenantStatusValid(t *testing.T) {
	if !RoomOccupied.Valid() || !RoomAvailable.Valid() || !RoomReserved.Valid() {
		t.Error("known room statuses should be valid")
	}
	if RoomStatus("Vacant").Valid() {
		t.Error("Vacant is not a known room status")
	}
	if !TenantActive.Valid() || !TenantInactive.Valid() {
		t.Error("known tenant statuses should be valid")
	}
}
