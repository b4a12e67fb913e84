package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
)

type fakeLeaveRepo struct {
	mu      sync.Mutex
	entries []domain.LeaveEntry
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{}
}

func (r *fakeLeaveRepo) Create(_ context.Context, entry *domain.LeaveEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLeaveRepo) ListByVendor(_ context.Context, vendorID string) ([]domain.LeaveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.LeaveEntry
	for _, entry := range r.entries {
		if entry.VendorID == vendorID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *fakeLeaveRepo) TotalHours(_ context.Context, vendorID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, entry := range r.entries {
		if entry.VendorID == vendorID {
			total += entry.Hours
		}
	}
	return total, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildPaymentSummary(t *testing.T) {
	t.Parallel()

	rows := []domain.PaymentRow{
		{PaymentID: "p1", VendorID: "v1", VendorName: "Alice", EventID: "e1", EventName: "Gala", VenueID: "venue1", VenueName: "Grand Hall", BaseAmount: dec("100.00"), Adjustment: dec("10.00"), Status: domain.PaymentStatusApproved},
		{PaymentID: "p2", VendorID: "v2", VendorName: "Bob", EventID: "e1", EventName: "Gala", VenueID: "venue1", VenueName: "Grand Hall", BaseAmount: dec("80.00"), Adjustment: dec("-5.00"), Status: domain.PaymentStatusPending},
		{PaymentID: "p3", VendorID: "v1", VendorName: "Alice", EventID: "e2", EventName: "Expo", VenueID: "venue1", VenueName: "Grand Hall", BaseAmount: dec("120.00"), Adjustment: decimal.Zero, Status: domain.PaymentStatusPaid},
		{PaymentID: "p4", VendorID: "v3", VendorName: "Cara", EventID: "e3", EventName: "Concert", VenueID: "venue2", VenueName: "Riverside", BaseAmount: dec("200.00"), Adjustment: dec("25.00"), Status: domain.PaymentStatusPending},
	}

	summary := BuildPaymentSummary(rows)

	if !summary.Total.Equal(dec("530.00")) {
		t.Fatalf("grand total = %s, want 530.00", summary.Total)
	}
	if len(summary.Venues) != 2 {
		t.Fatalf("venues = %d, want 2", len(summary.Venues))
	}

	grandHall := summary.Venues[0]
	if grandHall.VenueName != "Grand Hall" {
		t.Fatalf("first venue = %s, want Grand Hall", grandHall.VenueName)
	}
	if !grandHall.Subtotal.Equal(dec("305.00")) {
		t.Fatalf("venue subtotal = %s, want 305.00", grandHall.Subtotal)
	}
	if len(grandHall.Events) != 2 {
		t.Fatalf("events under Grand Hall = %d, want 2", len(grandHall.Events))
	}

	gala := grandHall.Events[0]
	if !gala.Subtotal.Equal(dec("185.00")) {
		t.Fatalf("event subtotal = %s, want 185.00", gala.Subtotal)
	}
	if len(gala.Vendors) != 2 {
		t.Fatalf("vendors under Gala = %d, want 2", len(gala.Vendors))
	}
	if !gala.Vendors[0].Total.Equal(dec("110.00")) {
		t.Fatalf("vendor line total = %s, want 110.00", gala.Vendors[0].Total)
	}

	riverside := summary.Venues[1]
	if !riverside.Subtotal.Equal(dec("225.00")) {
		t.Fatalf("venue subtotal = %s, want 225.00", riverside.Subtotal)
	}
}

func TestBuildPaymentSummaryEmpty(t *testing.T) {
	t.Parallel()

	summary := BuildPaymentSummary(nil)
	if !summary.Total.IsZero() {
		t.Fatalf("total = %s, want 0", summary.Total)
	}
	if len(summary.Venues) != 0 {
		t.Fatalf("venues = %d, want 0", len(summary.Venues))
	}
}

func newPayrollServiceForTest(profiles *fakeProfileRepo, leave *fakeLeaveRepo) *PayrollService {
	cfg := testConfig()
	cfg.Payroll = config.PayrollConfig{SickLeaveHoursPerMonth: 4}
	return NewPayrollService(cfg, PayrollDependencies{
		LeaveRepo:   leave,
		ProfileRepo: profiles,
	})
}

func TestLeaveBalanceAccrual(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileRepo()
	leave := newFakeLeaveRepo()
	svc := newPayrollServiceForTest(profiles, leave)

	hireDate := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	if err := profiles.Create(context.Background(), &domain.Profile{
		UserID:   "vendor-1",
		HireDate: &hireDate,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := leave.Create(context.Background(), &domain.LeaveEntry{
		VendorID: "vendor-1",
		Date:     time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
		Hours:    6,
	}); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	// Five whole months employed at 4 hours per month.
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	balance, err := svc.LeaveBalance(context.Background(), "vendor-1", now)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.MonthsEmployed != 5 {
		t.Fatalf("months = %d, want 5", balance.MonthsEmployed)
	}
	if balance.AccruedHours != 20 {
		t.Fatalf("accrued = %.1f, want 20", balance.AccruedHours)
	}
	if balance.UsedHours != 6 {
		t.Fatalf("used = %.1f, want 6", balance.UsedHours)
	}
	if balance.BalanceHours != 14 {
		t.Fatalf("balance = %.1f, want 14", balance.BalanceHours)
	}
}

func TestLeaveBalanceRequiresHireDate(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileRepo()
	svc := newPayrollServiceForTest(profiles, newFakeLeaveRepo())

	if err := profiles.Create(context.Background(), &domain.Profile{UserID: "vendor-1"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	if _, err := svc.LeaveBalance(context.Background(), "vendor-1", time.Now()); err == nil {
		t.Fatal("expected missing hire date to fail")
	}
}

func TestRecordLeaveRejectsOverdraw(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileRepo()
	leave := newFakeLeaveRepo()
	svc := newPayrollServiceForTest(profiles, leave)

	hireDate := time.Now().AddDate(0, -2, -1)
	if err := profiles.Create(context.Background(), &domain.Profile{
		UserID:   "vendor-1",
		HireDate: &hireDate,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	// Two months accrued is 8 hours; 10 must be refused.
	if _, err := svc.RecordLeave(context.Background(), "vendor-1", time.Now(), 10, "flu"); err == nil {
		t.Fatal("expected overdraw to fail")
	}

	entry, err := svc.RecordLeave(context.Background(), "vendor-1", time.Now(), 8, "flu")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.Hours != 8 {
		t.Fatalf("hours = %.1f, want 8", entry.Hours)
	}
}
