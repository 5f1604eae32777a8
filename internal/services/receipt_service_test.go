package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"school-backend/internal/models"
)

func TestGeneratePDFReceipt(t *testing.T) {
	f := newPaymentFixture()
	receipts := NewReceiptService(f.svc)

	payment, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeAdmission,
		AmountPaid:    200,
		PaymentMethod: models.PaymentMethodCash,
	}, "admin")
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	pdf, err := receipts.GeneratePDF(context.Background(), payment.PaymentID)
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF (starts %q)", pdf[:min(8, len(pdf))])
	}
}

func TestGenerateHistoryCSV(t *testing.T) {
	f := newPaymentFixture()
	receipts := NewReceiptService(f.svc)

	month, year := 1, 2025
	payment, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeMonthly,
		AmountPaid:    100,
		PaymentMethod: models.PaymentMethodOnline,
		Month:         &month,
		Year:          &year,
	}, "admin")
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	data, err := receipts.GenerateHistoryCSV(context.Background(), "S001")
	if err != nil {
		t.Fatalf("GenerateHistoryCSV: %v", err)
	}

	csv := string(data)
	if !strings.Contains(csv, "Payment ID") {
		t.Error("missing header row")
	}
	if !strings.Contains(csv, payment.PaymentID) {
		t.Error("payment row missing from export")
	}
	if !strings.Contains(csv, "January 2025") {
		t.Error("period missing from export")
	}
}
