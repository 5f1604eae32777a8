package models

import "time"

// FeeLedgerEntry tracks one fee obligation period: the admission fee, one
// month, or one year. Total is snapshotted from the fee structure when the
// entry is first created.
type FeeLedgerEntry struct {
	Total   float64   `json:"total"`
	Paid    float64   `json:"paid"`
	Pending float64   `json:"pending"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date,omitempty"`
}

// StudentFeeSummary is the per-student aggregate of all fee sub-ledgers.
// One row per student, created lazily on the first payment and mutated by
// every payment after that. Grand totals are recomputed in full from the
// sub-ledgers on every payment rather than merged incrementally.
type StudentFeeSummary struct {
	ID          int    `json:"id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	ClassName   string `json:"class_name"`

	AdmissionFeeTotal     float64 `json:"admission_fee_total"`
	AdmissionFeePaid      float64 `json:"admission_fee_paid"`
	AdmissionFeePending   float64 `json:"admission_fee_pending"`
	AdmissionFeeCompleted bool    `json:"admission_fee_completed"`

	// Keyed "MM-YYYY" and "YYYY" respectively; entries are created lazily
	// on the first payment for that period.
	MonthlyFees map[string]*FeeLedgerEntry `json:"monthly_fees"`
	AnnualFees  map[string]*FeeLedgerEntry `json:"annual_fees"`

	TotalFeesAmount    float64 `json:"total_fees_amount"`
	TotalPaidAmount    float64 `json:"total_paid_amount"`
	TotalPendingAmount float64 `json:"total_pending_amount"`

	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewStudentFeeSummary seeds a summary from the student's current fee
// structure: admission pending in full, no period entries yet.
func NewStudentFeeSummary(student *Student, fs *FeeStructure, now time.Time) *StudentFeeSummary {
	return &StudentFeeSummary{
		StudentID:           student.StudentID,
		StudentName:         student.FullName,
		ClassName:           student.ClassName,
		AdmissionFeeTotal:   fs.AdmissionFee,
		AdmissionFeePaid:    0,
		AdmissionFeePending: fs.AdmissionFee,
		MonthlyFees:         make(map[string]*FeeLedgerEntry),
		AnnualFees:          make(map[string]*FeeLedgerEntry),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
