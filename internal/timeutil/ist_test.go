package timeutil

import (
	"testing"
	"time"
)

func TestMonthlyDueDate(t *testing.T) {
	due := MonthlyDueDate(4, 2025)
	if due.Year() != 2025 || due.Month() != time.April || due.Day() != 5 {
		t.Errorf("due = %v, want 5 April 2025", due)
	}
	if due.Hour() != 0 || due.Minute() != 0 {
		t.Errorf("due not at midnight: %v", due)
	}
	if due.Location() != IST {
		t.Errorf("due in %v, want IST", due.Location())
	}
}

func TestAnnualDueDate(t *testing.T) {
	due := AnnualDueDate(2025)
	if due.Year() != 2025 || due.Month() != time.January || due.Day() != 31 {
		t.Errorf("due = %v, want 31 January 2025", due)
	}
}

func TestToIST(t *testing.T) {
	utc := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	ist := ToIST(utc)

	if !ist.Equal(utc) {
		t.Error("conversion changed the instant")
	}
	if ist.Hour() != 5 || ist.Minute() != 30 {
		t.Errorf("midnight UTC in IST = %02d:%02d, want 05:30", ist.Hour(), ist.Minute())
	}
}
