package services

import (
	"errors"
	"testing"

	"boardinghouse-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var errDriver = errors.New("driver: bad connection")

func tenantRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "room_id", "profile_id", "tenant_name", "rent_start", "rent_due", "move_in_date", "status"}).
		AddRow(21, 3, 7, "Juan Dela Cruz", "2026-01-01", "2026-02-01", "2026-01-01", status)
}

func TestDecideBookingApprove(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(5)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectQuery("FROM profiles").WithArgs(int64(7)).
		WillReturnRows(profileRows())
	mock.ExpectExec("INSERT INTO tenants").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE rooms SET status").WithArgs("Occupied", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(51, 1))
	mock.ExpectExec("UPDATE booking_requests").
		WithArgs("Approved", "Welcome!", int64(99), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TenancyService{}
	err := svc.DecideBooking(5, 99, BookingDecision{
		Approve:  true,
		Message:  "Welcome!",
		CheckIn:  "2026-01-01",
		CheckOut: "2026-02-01",
	})
	if err != nil {
		t.Fatalf("DecideBooking error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideBookingDecline(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(5)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(51, 1))
	mock.ExpectExec("UPDATE booking_requests").
		WithArgs("Declined", "Room under repair", int64(99), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TenancyService{}
	if err := svc.DecideBooking(5, 99, BookingDecision{Approve: false, Message: "Room under repair"}); err != nil {
		t.Fatalf("DecideBooking error: %v", err)
	}
	// no tenant or room statements on a decline
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideBookingRejectsSettledBooking(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(5)).
		WillReturnRows(bookingRows("Declined"))

	svc := TenancyService{}
	err := svc.DecideBooking(5, 99, BookingDecision{Approve: true})
	if !domain.IsConflict(err) {
		t.Fatalf("got %v, want conflict error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("writes ran on a settled booking: %v", err)
	}
}

func TestRemoveTenant(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM tenants").WithArgs(int64(21)).
		WillReturnRows(tenantRows("Active"))
	mock.ExpectExec("UPDATE tenants SET status").WithArgs("Inactive", int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rooms SET status").WithArgs("Available", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(51, 1))

	svc := TenancyService{}
	if err := svc.RemoveTenant(21); err != nil {
		t.Fatalf("RemoveTenant error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveTenantAlreadyInactive(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM tenants").WithArgs(int64(21)).
		WillReturnRows(tenantRows("Inactive"))

	svc := TenancyService{}
	if err := svc.RemoveTenant(21); !domain.IsConflict(err) {
		t.Fatalf("got %v, want conflict error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("writes ran on an inactive tenancy: %v", err)
	}
}

func TestSendReminderRequiresMessage(t *testing.T) {
	svc := TenancyService{}
	if err := svc.SendReminder(21, "   "); !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestSendReminder(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM tenants").WithArgs(int64(21)).
		WillReturnRows(tenantRows("Active"))
	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(int64(7), "Landlord", "Rent is due this Friday.", domain.NotifTypeReminder, false).
		WillReturnResult(sqlmock.NewResult(51, 1))

	svc := TenancyService{}
	if err := svc.SendReminder(21, "Rent is due this Friday."); err != nil {
		t.Fatalf("SendReminder error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
