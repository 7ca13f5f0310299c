package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDashboardStats(t *testing.T) {
	mock, done := newReconcileMock(t)
	defer done()

	mock.ExpectQuery("GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Available", 4).
			AddRow("Occupied", 5).
			AddRow("Reserved", 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tenants").WithArgs("Active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery("FROM payments").WithArgs(2026, 3, "Paid").
		WillReturnRows(sqlmock.NewRows([]string{"total", "monthly"}).AddRow(120000.0, 15000.0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM booking_requests").WithArgs("Pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM payments").WithArgs("Pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM payments p").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "room_id", "payment_date", "amount", "payment_status",
			"reference_no", "stripe_payment_intent_id", "payment_method", "currency",
			"paid_at", "notes", "created_at", "room_number", "tenant_name",
		}).AddRow(31, 21, 3, "2026-03-15", 5000.0, "Paid",
			"pi_abc", "pi_abc", "stripe", "PHP",
			fixedNow, "", fixedNow, "101", "Juan Dela Cruz"))

	svc := DashboardService{}
	stats, err := svc.Stats(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}

	if stats.TotalRooms != 10 {
		t.Errorf("total rooms = %d, want 10", stats.TotalRooms)
	}
	if stats.AvailableRooms != 4 || stats.OccupiedRooms != 5 || stats.ReservedRooms != 1 {
		t.Errorf("room split = %+v", stats)
	}
	if stats.ActiveTenants != 5 {
		t.Errorf("active tenants = %d", stats.ActiveTenants)
	}
	if stats.TotalIncome != 120000 || stats.MonthlyIncome != 15000 {
		t.Errorf("income = %v / %v", stats.TotalIncome, stats.MonthlyIncome)
	}
	if stats.PendingApprovals != 2 || stats.PendingPayments != 1 {
		t.Errorf("pending = %d approvals, %d payments", stats.PendingApprovals, stats.PendingPayments)
	}
	if len(stats.RecentPayments) != 1 || stats.RecentPayments[0].ID != 31 {
		t.Errorf("recent payments = %+v", stats.RecentPayments)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
