package services

import (
	"testing"
	"time"

	"school-backend/internal/models"
)

var testTime = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func testFeeStructure() *models.FeeStructure {
	return &models.FeeStructure{
		ClassName:    "5A",
		AdmissionFee: 500,
		MonthlyFee:   100,
		AnnualFee:    1200,
		IsActive:     true,
	}
}

func testSummary(fs *models.FeeStructure) *models.StudentFeeSummary {
	student := &models.Student{StudentID: "S001", FullName: "Asha Verma", ClassName: "5A"}
	return models.NewStudentFeeSummary(student, fs, testTime)
}

// checkTotals verifies the grand-total invariant: totals always equal the
// sum over every sub-ledger, and fees = paid + pending.
func checkTotals(t *testing.T, s *models.StudentFeeSummary) {
	t.Helper()

	paid := s.AdmissionFeePaid
	pending := s.AdmissionFeePending
	for _, e := range s.MonthlyFees {
		paid += e.Paid
		pending += e.Pending
	}
	for _, e := range s.AnnualFees {
		paid += e.Paid
		pending += e.Pending
	}

	if s.TotalPaidAmount != paid {
		t.Errorf("TotalPaidAmount = %.2f, sub-ledgers sum to %.2f", s.TotalPaidAmount, paid)
	}
	if s.TotalPendingAmount != pending {
		t.Errorf("TotalPendingAmount = %.2f, sub-ledgers sum to %.2f", s.TotalPendingAmount, pending)
	}
	if s.TotalFeesAmount != paid+pending {
		t.Errorf("TotalFeesAmount = %.2f, want paid+pending = %.2f", s.TotalFeesAmount, paid+pending)
	}
}

func TestReconcileAdmissionInstallments(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)

	status, pending, total, period := reconcile(s, fs, models.Admission{}, 200, testTime)
	if status != models.PaymentStatusPartial {
		t.Errorf("first installment status = %s, want PARTIAL", status)
	}
	if pending != 300 {
		t.Errorf("first installment pending = %.2f, want 300", pending)
	}
	if total != 500 {
		t.Errorf("total = %.2f, want 500", total)
	}
	if period != "" {
		t.Errorf("admission period = %q, want empty", period)
	}
	if s.AdmissionFeeCompleted {
		t.Error("admission marked completed after partial payment")
	}
	checkTotals(t, s)

	status, pending, _, _ = reconcile(s, fs, models.Admission{}, 300, testTime)
	if status != models.PaymentStatusPaid {
		t.Errorf("second installment status = %s, want PAID", status)
	}
	if pending != 0 {
		t.Errorf("second installment pending = %.2f, want 0", pending)
	}
	if !s.AdmissionFeeCompleted {
		t.Error("admission not marked completed after full payment")
	}
	checkTotals(t, s)
}

func TestReconcileMonthlyFullPayment(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)

	status, pending, total, period := reconcile(s, fs, models.Monthly{Month: 1, Year: 2025}, 100, testTime)
	if status != models.PaymentStatusPaid {
		t.Errorf("status = %s, want PAID", status)
	}
	if pending != 0 {
		t.Errorf("pending = %.2f, want 0", pending)
	}
	if total != 100 {
		t.Errorf("total = %.2f, want 100", total)
	}
	if period != "January 2025" {
		t.Errorf("period = %q, want January 2025", period)
	}

	entry := s.MonthlyFees["01-2025"]
	if entry == nil {
		t.Fatal("no ledger entry created for 01-2025")
	}
	if entry.Status != models.PaymentStatusPaid || entry.Paid != 100 || entry.Pending != 0 {
		t.Errorf("entry = %+v", entry)
	}
	checkTotals(t, s)
}

func TestReconcileMonthlyPartialThenComplete(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)
	kind := models.Monthly{Month: 2, Year: 2025}

	status, pending, _, _ := reconcile(s, fs, kind, 40, testTime)
	if status != models.PaymentStatusPartial || pending != 60 {
		t.Errorf("after 40: status %s pending %.2f, want PARTIAL 60", status, pending)
	}

	status, pending, _, _ = reconcile(s, fs, kind, 60, testTime)
	if status != models.PaymentStatusPaid || pending != 0 {
		t.Errorf("after 60: status %s pending %.2f, want PAID 0", status, pending)
	}

	entry := s.MonthlyFees["02-2025"]
	if entry.Paid != 100 {
		t.Errorf("entry paid = %.2f, want 100", entry.Paid)
	}
	if len(s.MonthlyFees) != 1 {
		t.Errorf("created %d monthly entries, want 1", len(s.MonthlyFees))
	}
	checkTotals(t, s)
}

func TestReconcileOverpaymentClampsPendingToZero(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)

	status, pending, _, _ := reconcile(s, fs, models.Monthly{Month: 3, Year: 2025}, 150, testTime)
	if status != models.PaymentStatusPaid {
		t.Errorf("status = %s, want PAID", status)
	}
	if pending != 0 {
		t.Errorf("pending = %.2f, want 0 (clamped)", pending)
	}

	entry := s.MonthlyFees["03-2025"]
	if entry.Pending != 0 {
		t.Errorf("entry pending = %.2f, want 0", entry.Pending)
	}
	if entry.Paid != 150 {
		t.Errorf("entry paid = %.2f, want 150 (actual amount kept)", entry.Paid)
	}
	checkTotals(t, s)

	// Excess does not roll into another period.
	if len(s.MonthlyFees) != 1 || len(s.AnnualFees) != 0 {
		t.Errorf("overpayment leaked into other ledgers: %d monthly, %d annual",
			len(s.MonthlyFees), len(s.AnnualFees))
	}
}

func TestReconcileAnnual(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)

	status, pending, total, period := reconcile(s, fs, models.Annual{Year: 2025}, 700, testTime)
	if status != models.PaymentStatusPartial || pending != 500 {
		t.Errorf("status %s pending %.2f, want PARTIAL 500", status, pending)
	}
	if total != 1200 {
		t.Errorf("total = %.2f, want 1200", total)
	}
	if period != "Year 2025" {
		t.Errorf("period = %q", period)
	}
	if s.AnnualFees["2025"] == nil {
		t.Fatal("no annual ledger entry for 2025")
	}
	checkTotals(t, s)
}

func TestReconcileMixedKindsKeepLedgersIndependent(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)

	reconcile(s, fs, models.Admission{}, 500, testTime)
	reconcile(s, fs, models.Monthly{Month: 1, Year: 2025}, 100, testTime)
	reconcile(s, fs, models.Monthly{Month: 2, Year: 2025}, 30, testTime)
	reconcile(s, fs, models.Annual{Year: 2025}, 1200, testTime)

	if !s.AdmissionFeeCompleted {
		t.Error("admission not completed")
	}
	if s.MonthlyFees["01-2025"].Status != models.PaymentStatusPaid {
		t.Error("January not PAID")
	}
	if s.MonthlyFees["02-2025"].Status != models.PaymentStatusPartial {
		t.Error("February not PARTIAL")
	}
	if s.AnnualFees["2025"].Status != models.PaymentStatusPaid {
		t.Error("annual 2025 not PAID")
	}

	if s.TotalPaidAmount != 1830 {
		t.Errorf("TotalPaidAmount = %.2f, want 1830", s.TotalPaidAmount)
	}
	if s.TotalPendingAmount != 70 {
		t.Errorf("TotalPendingAmount = %.2f, want 70", s.TotalPendingAmount)
	}
	checkTotals(t, s)

	if s.LastPaymentDate == nil || !s.LastPaymentDate.Equal(testTime) {
		t.Errorf("LastPaymentDate = %v, want %v", s.LastPaymentDate, testTime)
	}
}

// Sequential application models the serialized order the row lock
// enforces: the second payment must observe the first one's state.
func TestReconcileSequentialPaymentsAccumulate(t *testing.T) {
	fs := testFeeStructure()
	s := testSummary(fs)
	kind := models.Monthly{Month: 4, Year: 2025}

	_, pending1, _, _ := reconcile(s, fs, kind, 60, testTime)
	_, pending2, _, _ := reconcile(s, fs, kind, 60, testTime)

	if pending1 != 40 {
		t.Errorf("first pending = %.2f, want 40", pending1)
	}
	if pending2 != 0 {
		t.Errorf("second pending = %.2f, want 0", pending2)
	}
	if got := s.MonthlyFees["04-2025"].Paid; got != 120 {
		t.Errorf("entry paid = %.2f, want 120 (no lost update)", got)
	}
	checkTotals(t, s)
}
