package models

import "time"

// Online transaction statuses (Razorpay order lifecycle)
const (
	OnlineTxnCreated = "CREATED"
	OnlineTxnPaid    = "PAID"
	OnlineTxnFailed  = "FAILED"
)

// OnlineTransaction tracks a Razorpay order from creation until the
// webhook confirms payment and a Payment record is cut through the
// reconciliation engine.
type OnlineTransaction struct {
	ID                int       `json:"id"`
	OrderID           string    `json:"order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	StudentID         string    `json:"student_id"`
	PaymentType       string    `json:"payment_type"`
	Month             int       `json:"month,omitempty"`
	Year              int       `json:"year,omitempty"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status"`
	PaymentRecordID   string    `json:"payment_record_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateOrderRequest struct {
	StudentID   string  `json:"student_id" validate:"required"`
	PaymentType string  `json:"payment_type" validate:"required,oneof=ADMISSION MONTHLY ANNUAL"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Month       *int    `json:"month"`
	Year        *int    `json:"year"`
}
