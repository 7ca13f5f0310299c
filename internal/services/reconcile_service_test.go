package services

import (
	"testing"
	"time"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newReconcileMock(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db
	return mock, func() {
		intconfig.DB = prev
		db.Close()
	}
}

func bookingRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "room_id", "requestor", "status", "message", "contact_phone", "created_at",
		"r_id", "room_number", "rental_term", "price_monthly", "r_status",
	}).AddRow(1, 3, 7, status, "", "0917", fixedNow, 3, "101", "monthly", 5000.0, "Reserved")
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "full_name", "username", "email", "phone", "role", "status", "avatar_url", "created_at", "updated_at",
	}).AddRow(7, "Juan Dela Cruz", "juan", "juan@example.com", "", "user", "active", "", fixedNow, fixedNow)
}

func TestConfirmPaymentFullSequence(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(1), int64(7)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectQuery("SELECT id FROM payments").WithArgs("pi_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM tenants").WithArgs(int64(7), int64(3), "Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "profile_id", "tenant_name", "rent_start", "rent_due", "move_in_date", "status"}))
	mock.ExpectQuery("FROM profiles").WithArgs(int64(7)).
		WillReturnRows(profileRows())
	mock.ExpectExec("INSERT INTO tenants").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO payment_transactions").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec("UPDATE booking_requests SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rooms SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(51, 1))

	svc := ReconcileService{Currency: "PHP", Now: func() time.Time { return fixedNow }}
	result, err := svc.ConfirmPayment(ReconcileInput{
		BookingID:       1,
		UserID:          7,
		PaymentIntentID: "pi_abc",
		RedirectStatus:  "succeeded",
	})
	if err != nil {
		t.Fatalf("ConfirmPayment error: %v", err)
	}

	if result.AlreadyProcessed {
		t.Error("fresh intent should not report already processed")
	}
	if result.TenantID != 21 {
		t.Errorf("tenant id = %d, want 21", result.TenantID)
	}
	if result.PaymentID != 31 {
		t.Errorf("payment id = %d, want 31", result.PaymentID)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmPaymentReusesActiveTenant(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(1), int64(7)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectQuery("SELECT id FROM payments").WithArgs("pi_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM tenants").WithArgs(int64(7), int64(3), "Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "profile_id", "tenant_name", "rent_start", "rent_due", "move_in_date", "status"}).
			AddRow(21, 3, 7, "Juan Dela Cruz", "", "", "2026-01-01", "Active"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO payment_transactions").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec("UPDATE booking_requests SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rooms SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(51, 1))

	svc := ReconcileService{Now: func() time.Time { return fixedNow }}
	result, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 7, PaymentIntentID: "pi_abc"})
	if err != nil {
		t.Fatalf("ConfirmPayment error: %v", err)
	}
	if result.TenantID != 21 {
		t.Errorf("tenant id = %d, want the existing tenancy 21", result.TenantID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmPaymentSecondRunIsNoOp(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(1), int64(7)).
		WillReturnRows(bookingRows("Approved"))
	mock.ExpectQuery("SELECT id FROM payments").WithArgs("pi_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

	svc := ReconcileService{Now: func() time.Time { return fixedNow }}
	result, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 7, PaymentIntentID: "pi_abc"})
	if err != nil {
		t.Fatalf("ConfirmPayment error: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("expected already-processed result")
	}
	if result.PaymentID != 31 {
		t.Errorf("payment id = %d, want the existing row 31", result.PaymentID)
	}
	// no tenant, payment, booking, room or notification statements expected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("side effects ran on a re-entry: %v", err)
	}
}

func TestConfirmPaymentLosesInsertRace(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(1), int64(7)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectQuery("SELECT id FROM payments").WithArgs("pi_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM tenants").WithArgs(int64(7), int64(3), "Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "profile_id", "tenant_name", "rent_start", "rent_due", "move_in_date", "status"}).
			AddRow(21, 3, 7, "Juan Dela Cruz", "", "", "", "Active"))
	// duplicate key: RowsAffected 0, the concurrent confirmation won
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := ReconcileService{Now: func() time.Time { return fixedNow }}
	result, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 7, PaymentIntentID: "pi_abc"})
	if err != nil {
		t.Fatalf("ConfirmPayment error: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("losing the conditional insert should read as already processed")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sequence continued past the lost race: %v", err)
	}
}

func TestConfirmPaymentFatalPaymentFailureStops(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(1), int64(7)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectQuery("SELECT id FROM payments").WithArgs("pi_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM tenants").WithArgs(int64(7), int64(3), "Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "profile_id", "tenant_name", "rent_start", "rent_due", "move_in_date", "status"}).
			AddRow(21, 3, 7, "Juan Dela Cruz", "", "", "", "Active"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errDriver)

	svc := ReconcileService{Now: func() time.Time { return fixedNow }}
	_, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 7, PaymentIntentID: "pi_abc"})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	// booking status, room status and notification must stay untouched
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("side effects ran after a fatal failure: %v", err)
	}
}

func TestConfirmPaymentBestEffortFailureWarnsAndContinues(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(1), int64(7)).
		WillReturnRows(bookingRows("Pending"))
	mock.ExpectQuery("SELECT id FROM payments").WithArgs("pi_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM tenants").WithArgs(int64(7), int64(3), "Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "profile_id", "tenant_name", "rent_start", "rent_due", "move_in_date", "status"}).
			AddRow(21, 3, 7, "Juan Dela Cruz", "", "", "", "Active"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO payment_transactions").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec("UPDATE booking_requests SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rooms SET status").
		WillReturnError(errDriver)
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(51, 1))

	svc := ReconcileService{Now: func() time.Time { return fixedNow }}
	result, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 7, PaymentIntentID: "pi_abc"})
	if err != nil {
		t.Fatalf("best-effort failure must not fail the confirmation: %v", err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Step != "occupy room" {
		t.Fatalf("warnings = %v, want one for the room update", result.Warnings)
	}
	if result.PaymentID != 31 {
		t.Errorf("payment id = %d, want 31", result.PaymentID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmPaymentInputValidation(t *testing.T) {
	svc := ReconcileService{}

	if _, err := svc.ConfirmPayment(ReconcileInput{BookingID: 0, UserID: 7}); !domain.IsValidation(err) {
		t.Errorf("zero booking id: got %v, want validation error", err)
	}
	if _, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 0}); !domain.IsUnauthorized(err) {
		t.Errorf("zero user id: got %v, want unauthorized error", err)
	}
	if _, err := svc.ConfirmPayment(ReconcileInput{BookingID: 1, UserID: 7, RedirectStatus: "failed"}); !domain.IsValidation(err) {
		t.Errorf("failed redirect: got %v, want validation error", err)
	}
}

func TestConfirmPaymentUnknownBooking(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("FROM booking_requests b").WithArgs(int64(99), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := ReconcileService{Now: func() time.Time { return fixedNow }}
	_, err := svc.ConfirmPayment(ReconcileInput{BookingID: 99, UserID: 7, PaymentIntentID: "pi_abc"})
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want not-found error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
