package models

import (
	"fmt"
	"strconv"
	"time"

	"school-backend/internal/apperr"
	"school-backend/internal/timeutil"
)

// FeeKind is the sealed set of payment kinds. Dispatching on the concrete
// type keeps the engine's switch exhaustive: a new kind fails to compile
// everywhere it is not handled instead of falling into a default case.
type FeeKind interface {
	Type() string
	feeKind()
}

// Admission is the one-off admission fee; it has no period.
type Admission struct{}

// Monthly is the fee for one calendar month.
type Monthly struct {
	Month int // 1-12
	Year  int
}

// Annual is the fee for one calendar year.
type Annual struct {
	Year int
}

func (Admission) feeKind() {}
func (Monthly) feeKind()   {}
func (Annual) feeKind()    {}

func (Admission) Type() string { return PaymentTypeAdmission }
func (Monthly) Type() string   { return PaymentTypeMonthly }
func (Annual) Type() string    { return PaymentTypeAnnual }

// Key returns the sub-ledger map key, e.g. "01-2025".
func (m Monthly) Key() string {
	return fmtMonthKey(m.Month, m.Year)
}

// Key returns the sub-ledger map key, e.g. "2025".
func (a Annual) Key() string {
	return fmtYearKey(a.Year)
}

// PeriodLabel returns the human-readable period, e.g. "January 2025".
func (m Monthly) PeriodLabel() string {
	return time.Month(m.Month).String() + " " + fmtYearKey(m.Year)
}

// PeriodLabel returns the human-readable period, e.g. "Year 2025".
func (a Annual) PeriodLabel() string {
	return "Year " + fmtYearKey(a.Year)
}

// DueDate is the 5th of the month.
func (m Monthly) DueDate() time.Time {
	return timeutil.MonthlyDueDate(m.Month, m.Year)
}

// DueDate is the 31st of January.
func (a Annual) DueDate() time.Time {
	return timeutil.AnnualDueDate(a.Year)
}

// ParseFeeKind builds a FeeKind from the wire representation, enforcing the
// period fields each kind requires.
func ParseFeeKind(paymentType string, month, year *int) (FeeKind, error) {
	switch paymentType {
	case PaymentTypeAdmission:
		return Admission{}, nil
	case PaymentTypeMonthly:
		if month == nil || year == nil {
			return nil, apperr.BadRequest("month and year are required for monthly payment")
		}
		if *month < 1 || *month > 12 {
			return nil, apperr.BadRequest("month must be between 1 and 12")
		}
		return Monthly{Month: *month, Year: *year}, nil
	case PaymentTypeAnnual:
		if year == nil {
			return nil, apperr.BadRequest("year is required for annual payment")
		}
		return Annual{Year: *year}, nil
	default:
		return nil, apperr.BadRequest("unknown payment type: %s", paymentType)
	}
}

func fmtMonthKey(month, year int) string {
	return fmt.Sprintf("%02d-%d", month, year)
}

func fmtYearKey(year int) string {
	return strconv.Itoa(year)
}
