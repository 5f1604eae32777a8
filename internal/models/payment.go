package models

import "time"

// Payment types
const (
	PaymentTypeAdmission = "ADMISSION"
	PaymentTypeMonthly   = "MONTHLY"
	PaymentTypeAnnual    = "ANNUAL"
)

// Payment methods
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodCard         = "CARD"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodOnline       = "ONLINE"
	PaymentMethodCheque       = "CHEQUE"
)

// Payment statuses. PENDING and OVERDUE are part of the domain vocabulary
// but are never produced by the reconciliation engine; OVERDUE would need a
// due-date sweep that lives outside this codebase.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusPending = "PENDING"
	PaymentStatusOverdue = "OVERDUE"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodOnline, PaymentMethodCheque:
		return true
	}
	return false
}

// Payment is an immutable record of one fee payment. It is created once by
// the reconciliation engine and never updated or deleted.
type Payment struct {
	ID                   int       `json:"id"`
	PaymentID            string    `json:"payment_id"` // e.g. PAY-3F2A91BC
	StudentID            string    `json:"student_id"`
	StudentName          string    `json:"student_name"`
	PaymentType          string    `json:"payment_type"`
	AmountPaid           float64   `json:"amount_paid"`
	TotalAmount          float64   `json:"total_amount"`   // fee total for this kind, snapshotted
	PendingAmount        float64   `json:"pending_amount"` // sub-ledger pending after this payment
	PaymentMethod        string    `json:"payment_method"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	Remarks              string    `json:"remarks,omitempty"`
	PaymentPeriod        string    `json:"payment_period,omitempty"` // "January 2025", "Year 2025"
	Month                int       `json:"month,omitempty"`          // 1-12, monthly payments only
	Year                 int       `json:"year,omitempty"`
	Status               string    `json:"status"`
	PaymentDate          time.Time `json:"payment_date"`
	CreatedBy            string    `json:"created_by,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

type CreatePaymentRequest struct {
	StudentID            string  `json:"student_id" validate:"required"`
	PaymentType          string  `json:"payment_type" validate:"required,oneof=ADMISSION MONTHLY ANNUAL"`
	AmountPaid           float64 `json:"amount_paid" validate:"required,gt=0"`
	PaymentMethod        string  `json:"payment_method" validate:"required,oneof=CASH CARD BANK_TRANSFER ONLINE CHEQUE"`
	TransactionReference string  `json:"transaction_reference"`
	Remarks              string  `json:"remarks"`
	Month                *int    `json:"month"` // required for MONTHLY
	Year                 *int    `json:"year"`  // required for MONTHLY and ANNUAL
}

// PaymentReceipt is the receipt view of a payment, used for the JSON
// receipt endpoint and as input to the PDF generator.
type PaymentReceipt struct {
	ReceiptNumber        string    `json:"receipt_number"`
	StudentID            string    `json:"student_id"`
	StudentName          string    `json:"student_name"`
	ClassName            string    `json:"class_name"`
	PaymentType          string    `json:"payment_type"`
	PaymentPeriod        string    `json:"payment_period,omitempty"`
	AmountPaid           float64   `json:"amount_paid"`
	PendingAmount        float64   `json:"pending_amount"`
	PaymentMethod        string    `json:"payment_method"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	PaymentDate          time.Time `json:"payment_date"`
	Remarks              string    `json:"remarks,omitempty"`
	ReceivedBy           string    `json:"received_by,omitempty"`
}
