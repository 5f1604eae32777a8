package services

import (
	"time"

	"school-backend/internal/models"
)

// reconcile applies one payment to the student's fee summary and reports
// the outcome recorded on the payment: derived status, the sub-ledger's
// post-update pending amount, the fee total snapshotted for this kind, and
// the human-readable period label (empty for admission).
//
// Pure arithmetic on models only; persistence and locking are the
// service's problem.
func reconcile(s *models.StudentFeeSummary, fs *models.FeeStructure, kind models.FeeKind, amount float64, now time.Time) (status string, pending, total float64, period string) {
	switch k := kind.(type) {
	case models.Admission:
		total = fs.AdmissionFee
		status, pending = applyAdmission(s, amount)
	case models.Monthly:
		total = fs.MonthlyFee
		status, pending = applyPeriod(s.MonthlyFees, k.Key(), fs.MonthlyFee, k.DueDate(), amount)
		period = k.PeriodLabel()
	case models.Annual:
		total = fs.AnnualFee
		status, pending = applyPeriod(s.AnnualFees, k.Key(), fs.AnnualFee, k.DueDate(), amount)
		period = k.PeriodLabel()
	}

	t := now
	s.LastPaymentDate = &t
	recomputeTotals(s, now)
	return status, pending, total, period
}

func applyAdmission(s *models.StudentFeeSummary, amount float64) (string, float64) {
	newPaid := s.AdmissionFeePaid + amount

	s.AdmissionFeePaid = newPaid
	s.AdmissionFeePending = s.AdmissionFeeTotal - newPaid

	if s.AdmissionFeePending <= 0 {
		// Overpayment is clamped: the excess is not tracked or carried
		// forward to another period.
		s.AdmissionFeePending = 0
		s.AdmissionFeeCompleted = true
		return models.PaymentStatusPaid, 0
	}

	s.AdmissionFeeCompleted = false
	return models.PaymentStatusPartial, s.AdmissionFeePending
}

// applyPeriod updates the keyed sub-ledger entry for one month or year,
// creating it lazily with the fee structure's current amount as its total.
func applyPeriod(entries map[string]*models.FeeLedgerEntry, key string, feeTotal float64, dueDate time.Time, amount float64) (string, float64) {
	entry := entries[key]
	if entry == nil {
		entry = &models.FeeLedgerEntry{
			Total:   feeTotal,
			Pending: feeTotal,
			DueDate: dueDate,
		}
		entries[key] = entry
	}

	entry.Paid += amount
	entry.Pending = entry.Total - entry.Paid

	if entry.Pending <= 0 {
		entry.Pending = 0
		entry.Status = models.PaymentStatusPaid
		return models.PaymentStatusPaid, 0
	}

	entry.Status = models.PaymentStatusPartial
	return models.PaymentStatusPartial, entry.Pending
}

// recomputeTotals rebuilds the grand totals from every sub-ledger. Full
// recomputation keeps the invariant (totals == sum of sub-ledgers) immune
// to drift; the number of periods per student is small enough that this
// costs nothing.
func recomputeTotals(s *models.StudentFeeSummary, now time.Time) {
	totalPaid := s.AdmissionFeePaid
	totalPending := s.AdmissionFeePending

	for _, entry := range s.MonthlyFees {
		totalPaid += entry.Paid
		totalPending += entry.Pending
	}
	for _, entry := range s.AnnualFees {
		totalPaid += entry.Paid
		totalPending += entry.Pending
	}

	s.TotalPaidAmount = totalPaid
	s.TotalPendingAmount = totalPending
	s.TotalFeesAmount = totalPaid + totalPending
	s.UpdatedAt = now
}
