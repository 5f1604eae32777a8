package models

import "time"

// FeeStructure defines the fee amounts for one class. Amounts in effect at
// payment time are snapshotted onto the payment and summary, so later edits
// never alter already-created records.
type FeeStructure struct {
	ID           int       `json:"id"`
	ClassName    string    `json:"class_name"`
	AdmissionFee float64   `json:"admission_fee"`
	MonthlyFee   float64   `json:"monthly_fee"`
	AnnualFee    float64   `json:"annual_fee"`
	TransportFee float64   `json:"transport_fee,omitempty"`
	ExamFee      float64   `json:"exam_fee,omitempty"`
	ActivityFee  float64   `json:"activity_fee,omitempty"`
	IsActive     bool      `json:"is_active"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type FeeStructureRequest struct {
	ClassName    string  `json:"class_name" validate:"required"`
	AdmissionFee float64 `json:"admission_fee" validate:"gte=0"`
	MonthlyFee   float64 `json:"monthly_fee" validate:"gte=0"`
	AnnualFee    float64 `json:"annual_fee" validate:"gte=0"`
	TransportFee float64 `json:"transport_fee" validate:"gte=0"`
	ExamFee      float64 `json:"exam_fee" validate:"gte=0"`
	ActivityFee  float64 `json:"activity_fee" validate:"gte=0"`
}
