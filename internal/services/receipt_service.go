package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"school-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders payment receipts and payment-history exports.
type ReceiptService struct {
	payments *PaymentService
}

func NewReceiptService(payments *PaymentService) *ReceiptService {
	return &ReceiptService{payments: payments}
}

// GeneratePDF renders a printable A5 receipt for the payment.
func (s *ReceiptService) GeneratePDF(ctx context.Context, paymentID string) ([]byte, error) {
	receipt, err := s.payments.GetReceipt(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(128, 10, "Fee Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(128, 5, fmt.Sprintf("Receipt No: %s", receipt.ReceiptNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(128, 5, fmt.Sprintf("Date: %s", timeutil.FormatIST(receipt.PaymentDate, timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(128, 7, "Student", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(64, 6, fmt.Sprintf("ID: %s", receipt.StudentID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Class: %s", receipt.ClassName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(128, 6, fmt.Sprintf("Name: %s", receipt.StudentName), "LRB", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(128, 7, "Payment", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	feeLine := receipt.PaymentType
	if receipt.PaymentPeriod != "" {
		feeLine += " - " + receipt.PaymentPeriod
	}
	pdf.CellFormat(128, 6, fmt.Sprintf("Fee: %s", feeLine), "LRB", 1, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Method: %s", receipt.PaymentMethod), "LB", 0, "L", false, 0, "")
	if receipt.TransactionReference != "" {
		pdf.CellFormat(64, 6, fmt.Sprintf("Ref: %s", receipt.TransactionReference), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(64, 6, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(128, 9, fmt.Sprintf("Amount Paid: Rs. %.2f", receipt.AmountPaid), "1", 1, "C", true, 0, "")
	if receipt.PendingAmount > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(255, 200, 200)
		pdf.CellFormat(128, 8, fmt.Sprintf("Balance Due: Rs. %.2f", receipt.PendingAmount), "1", 1, "C", true, 0, "")
	}

	if receipt.ReceivedBy != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(128, 5, fmt.Sprintf("Received by: %s", receipt.ReceivedBy), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateHistoryCSV exports a student's full payment history as CSV.
func (s *ReceiptService) GenerateHistoryCSV(ctx context.Context, studentID string) ([]byte, error) {
	payments, err := s.payments.GetStudentPayments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Payment ID", "Date", "Type", "Period", "Amount Paid", "Pending", "Method", "Status", "Reference"})
	for _, p := range payments {
		w.Write([]string{
			p.PaymentID,
			timeutil.FormatIST(p.PaymentDate, timeutil.DateLayout),
			p.PaymentType,
			p.PaymentPeriod,
			fmt.Sprintf("%.2f", p.AmountPaid),
			fmt.Sprintf("%.2f", p.PendingAmount),
			p.PaymentMethod,
			p.Status,
			p.TransactionReference,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
