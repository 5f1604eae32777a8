package services

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"school-backend/internal/apperr"
	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// fakeTx satisfies pgx.Tx for the methods the engine touches. The
// embedded interface is nil; anything unexpected panics loudly.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	lastTx *fakeTx
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	db.lastTx = &fakeTx{}
	return db.lastTx, nil
}

type fakeStudents map[string]*models.Student

func (f fakeStudents) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	s, ok := f[studentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

type fakeFeeStructures map[string]*models.FeeStructure

func (f fakeFeeStructures) GetActiveByClass(ctx context.Context, className string) (*models.FeeStructure, error) {
	fs, ok := f[className]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return fs, nil
}

type fakeSummaryStore struct {
	summaries map[string]*models.StudentFeeSummary
}

func (f *fakeSummaryStore) GetByStudentID(ctx context.Context, studentID string) (*models.StudentFeeSummary, error) {
	s, ok := f.summaries[studentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeSummaryStore) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, seed *models.StudentFeeSummary) (*models.StudentFeeSummary, error) {
	if s, ok := f.summaries[seed.StudentID]; ok {
		return s, nil
	}
	f.summaries[seed.StudentID] = seed
	return seed, nil
}

func (f *fakeSummaryStore) SaveTx(ctx context.Context, tx pgx.Tx, s *models.StudentFeeSummary) error {
	f.summaries[s.StudentID] = s
	return nil
}

type fakePaymentStore struct {
	created   []*models.Payment
	createErr error
}

func (f *fakePaymentStore) CreateTx(ctx context.Context, tx pgx.Tx, p *models.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakePaymentStore) ListByStudent(ctx context.Context, studentID string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.created {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	for _, p := range f.created {
		if p.PaymentID == paymentID {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// fakeAlertSink records alerts raised on failed payments.
type fakeAlertSink struct {
	raised []string
}

func (f *fakeAlertSink) RaiseAlert(severity, alertType, message string) {
	f.raised = append(f.raised, alertType+": "+message)
}

type paymentFixture struct {
	svc       *PaymentService
	db        *fakeDB
	summaries *fakeSummaryStore
	payments  *fakePaymentStore
	alerts    *fakeAlertSink
}

func newPaymentFixture() *paymentFixture {
	db := &fakeDB{}
	students := fakeStudents{
		"S001": {StudentID: "S001", FullName: "Asha Verma", ClassName: "5A"},
	}
	feeStructures := fakeFeeStructures{
		"5A": testFeeStructure(),
	}
	summaries := &fakeSummaryStore{summaries: make(map[string]*models.StudentFeeSummary)}
	payments := &fakePaymentStore{}
	alerts := &fakeAlertSink{}

	svc := NewPaymentService(db, students, feeStructures, summaries, payments, alerts,
		log.New(io.Discard, "", 0))
	svc.now = func() time.Time { return testTime }

	return &paymentFixture{svc: svc, db: db, summaries: summaries, payments: payments, alerts: alerts}
}

func TestProcessPaymentAdmission(t *testing.T) {
	f := newPaymentFixture()

	payment, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeAdmission,
		AmountPaid:    200,
		PaymentMethod: models.PaymentMethodCash,
	}, "admin")
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	if !strings.HasPrefix(payment.PaymentID, "PAY-") || len(payment.PaymentID) != 12 {
		t.Errorf("payment id = %q, want PAY- plus 8 chars", payment.PaymentID)
	}
	if payment.Status != models.PaymentStatusPartial {
		t.Errorf("status = %s, want PARTIAL", payment.Status)
	}
	if payment.TotalAmount != 500 || payment.PendingAmount != 300 {
		t.Errorf("total %.2f pending %.2f, want 500/300", payment.TotalAmount, payment.PendingAmount)
	}
	if payment.Month != 0 || payment.Year != 0 || payment.PaymentPeriod != "" {
		t.Errorf("admission payment carries a period: %+v", payment)
	}
	if payment.CreatedBy != "admin" {
		t.Errorf("created by = %q", payment.CreatedBy)
	}

	if len(f.payments.created) != 1 {
		t.Fatalf("%d payments persisted, want 1", len(f.payments.created))
	}
	if !f.db.lastTx.committed {
		t.Error("transaction not committed")
	}

	summary := f.summaries.summaries["S001"]
	if summary == nil {
		t.Fatal("no summary created")
	}
	if summary.AdmissionFeePaid != 200 || summary.AdmissionFeePending != 300 {
		t.Errorf("summary admission paid %.2f pending %.2f", summary.AdmissionFeePaid, summary.AdmissionFeePending)
	}
}

func TestProcessPaymentMonthlyCarriesPeriod(t *testing.T) {
	f := newPaymentFixture()

	month, year := 1, 2025
	payment, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeMonthly,
		AmountPaid:    100,
		PaymentMethod: models.PaymentMethodCard,
		Month:         &month,
		Year:          &year,
	}, "admin")
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	if payment.Month != 1 || payment.Year != 2025 {
		t.Errorf("month/year = %d/%d", payment.Month, payment.Year)
	}
	if payment.PaymentPeriod != "January 2025" {
		t.Errorf("period = %q", payment.PaymentPeriod)
	}
	if payment.Status != models.PaymentStatusPaid {
		t.Errorf("status = %s, want PAID", payment.Status)
	}
}

func TestProcessPaymentSequentialAccumulates(t *testing.T) {
	f := newPaymentFixture()
	month, year := 2, 2025

	req := &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeMonthly,
		AmountPaid:    60,
		PaymentMethod: models.PaymentMethodCash,
		Month:         &month,
		Year:          &year,
	}

	first, err := f.svc.ProcessPayment(context.Background(), req, "admin")
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	second, err := f.svc.ProcessPayment(context.Background(), req, "admin")
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}

	if first.PendingAmount != 40 {
		t.Errorf("first pending = %.2f, want 40", first.PendingAmount)
	}
	if second.PendingAmount != 0 || second.Status != models.PaymentStatusPaid {
		t.Errorf("second pending %.2f status %s, want 0 PAID", second.PendingAmount, second.Status)
	}

	summary := f.summaries.summaries["S001"]
	if got := summary.MonthlyFees["02-2025"].Paid; got != 120 {
		t.Errorf("ledger paid = %.2f, want 120", got)
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	f := newPaymentFixture()
	month, year := 1, 2025

	tests := []struct {
		name       string
		req        *models.CreatePaymentRequest
		wantStatus int
	}{
		{
			"unknown student",
			&models.CreatePaymentRequest{StudentID: "NOPE", PaymentType: "ADMISSION",
				AmountPaid: 100, PaymentMethod: "CASH"},
			http.StatusNotFound,
		},
		{
			"zero amount",
			&models.CreatePaymentRequest{StudentID: "S001", PaymentType: "ADMISSION",
				AmountPaid: 0, PaymentMethod: "CASH"},
			http.StatusBadRequest,
		},
		{
			"negative amount",
			&models.CreatePaymentRequest{StudentID: "S001", PaymentType: "ADMISSION",
				AmountPaid: -50, PaymentMethod: "CASH"},
			http.StatusBadRequest,
		},
		{
			"invalid method",
			&models.CreatePaymentRequest{StudentID: "S001", PaymentType: "ADMISSION",
				AmountPaid: 100, PaymentMethod: "BARTER"},
			http.StatusBadRequest,
		},
		{
			"monthly without period",
			&models.CreatePaymentRequest{StudentID: "S001", PaymentType: "MONTHLY",
				AmountPaid: 100, PaymentMethod: "CASH"},
			http.StatusBadRequest,
		},
		{
			"annual without year",
			&models.CreatePaymentRequest{StudentID: "S001", PaymentType: "ANNUAL",
				AmountPaid: 100, PaymentMethod: "CASH", Month: &month},
			http.StatusBadRequest,
		},
		{
			"unknown payment type",
			&models.CreatePaymentRequest{StudentID: "S001", PaymentType: "WEEKLY",
				AmountPaid: 100, PaymentMethod: "CASH", Month: &month, Year: &year},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ProcessPayment(context.Background(), tt.req, "admin")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.StatusOf(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d (%v)", got, tt.wantStatus, err)
			}
		})
	}

	if len(f.payments.created) != 0 {
		t.Errorf("%d payments persisted by rejected requests", len(f.payments.created))
	}
}

func TestProcessPaymentNoFeeStructure(t *testing.T) {
	f := newPaymentFixture()
	f.svc.feeStructures = fakeFeeStructures{}

	_, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeAdmission,
		AmountPaid:    100,
		PaymentMethod: models.PaymentMethodCash,
	}, "admin")
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestGetFeeSummaryNotFound(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.GetFeeSummary(context.Background(), "S001")
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestGetStudentPaymentsUnknownStudent(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.GetStudentPayments(context.Background(), "NOPE")
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestGetReceiptUsesPaymentID(t *testing.T) {
	f := newPaymentFixture()

	payment, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeAdmission,
		AmountPaid:    500,
		PaymentMethod: models.PaymentMethodCheque,
	}, "clerk")
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	receipt, err := f.svc.GetReceipt(context.Background(), payment.PaymentID)
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}

	if receipt.ReceiptNumber != payment.PaymentID {
		t.Errorf("receipt number = %q, want %q", receipt.ReceiptNumber, payment.PaymentID)
	}
	if receipt.ClassName != "5A" {
		t.Errorf("class = %q, want 5A", receipt.ClassName)
	}
	if receipt.ReceivedBy != "clerk" {
		t.Errorf("received by = %q", receipt.ReceivedBy)
	}
}

func TestProcessPaymentWriteFailureRaisesAlert(t *testing.T) {
	f := newPaymentFixture()
	f.payments.createErr = errors.New("connection reset")

	_, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeAdmission,
		AmountPaid:    100,
		PaymentMethod: models.PaymentMethodCash,
	}, "admin")
	if err == nil {
		t.Fatal("expected error")
	}

	if len(f.alerts.raised) != 1 {
		t.Fatalf("%d alerts raised, want 1", len(f.alerts.raised))
	}
	if !strings.Contains(f.alerts.raised[0], "S001") {
		t.Errorf("alert = %q, want student id in message", f.alerts.raised[0])
	}
	if f.db.lastTx.committed {
		t.Error("transaction committed after failed write")
	}
}

func TestProcessPaymentValidationFailureDoesNotAlert(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.ProcessPayment(context.Background(), &models.CreatePaymentRequest{
		StudentID:     "S001",
		PaymentType:   models.PaymentTypeAdmission,
		AmountPaid:    -5,
		PaymentMethod: models.PaymentMethodCash,
	}, "admin")
	if err == nil {
		t.Fatal("expected error")
	}

	if len(f.alerts.raised) != 0 {
		t.Errorf("rejected request raised alerts: %v", f.alerts.raised)
	}
}
