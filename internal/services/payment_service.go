package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"school-backend/internal/apperr"
	"school-backend/internal/cache"
	"school-backend/internal/metrics"
	"school-backend/internal/models"
	"school-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type StudentFinder interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
}

type FeeStructureFinder interface {
	GetActiveByClass(ctx context.Context, className string) (*models.FeeStructure, error)
}

type FeeSummaryStore interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.StudentFeeSummary, error)
	GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, seed *models.StudentFeeSummary) (*models.StudentFeeSummary, error)
	SaveTx(ctx context.Context, tx pgx.Tx, s *models.StudentFeeSummary) error
}

type PaymentStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, p *models.Payment) error
	ListByStudent(ctx context.Context, studentID string) ([]*models.Payment, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
}

// AlertSink receives operational alerts. *monitoring.Server satisfies it;
// a nil sink disables alerting.
type AlertSink interface {
	RaiseAlert(severity, alertType, message string)
}

// PaymentService runs the fee reconciliation engine: it records payments
// and keeps each student's fee summary consistent with them.
type PaymentService struct {
	db            TxBeginner
	students      StudentFinder
	feeStructures FeeStructureFinder
	summaries     FeeSummaryStore
	payments      PaymentStore
	alerts        AlertSink
	logger        *log.Logger
	now           func() time.Time
}

func NewPaymentService(db TxBeginner, students StudentFinder, feeStructures FeeStructureFinder,
	summaries FeeSummaryStore, payments PaymentStore, alerts AlertSink, logger *log.Logger) *PaymentService {
	return &PaymentService{
		db:            db,
		students:      students,
		feeStructures: feeStructures,
		summaries:     summaries,
		payments:      payments,
		alerts:        alerts,
		logger:        logger,
		now:           timeutil.Now,
	}
}

// failTx counts a payment that got past validation but could not be
// written, and surfaces it on the ops dashboard.
func (s *PaymentService) failTx(studentID string, err error) {
	metrics.PaymentFailuresTotal.Inc()
	if s.alerts != nil {
		s.alerts.RaiseAlert("critical", "payment_failure",
			fmt.Sprintf("payment for student %s failed: %v", studentID, err))
	}
}

func newPaymentID() string {
	return "PAY-" + strings.ToUpper(uuid.NewString()[:8])
}

// ProcessPayment records one fee payment and updates the student's fee
// summary atomically. The summary row is locked for the duration of the
// transaction, so concurrent payments for the same student serialize and
// each one sees the previous one's totals.
func (s *PaymentService) ProcessPayment(ctx context.Context, req *models.CreatePaymentRequest, createdBy string) (*models.Payment, error) {
	kind, err := models.ParseFeeKind(req.PaymentType, req.Month, req.Year)
	if err != nil {
		metrics.PaymentFailuresTotal.Inc()
		return nil, err
	}
	if req.AmountPaid <= 0 {
		metrics.PaymentFailuresTotal.Inc()
		return nil, apperr.BadRequest("amount paid must be greater than zero")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		metrics.PaymentFailuresTotal.Inc()
		return nil, apperr.BadRequest("invalid payment method: %s", req.PaymentMethod)
	}

	student, err := s.students.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		metrics.PaymentFailuresTotal.Inc()
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("student not found: %s", req.StudentID)
		}
		return nil, err
	}

	fs, err := s.feeStructures.GetActiveByClass(ctx, student.ClassName)
	if err != nil {
		metrics.PaymentFailuresTotal.Inc()
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("fee structure not found for class: %s", student.ClassName)
		}
		return nil, err
	}

	now := s.now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.failTx(student.StudentID, err)
		return nil, err
	}
	defer tx.Rollback(ctx)

	summary, err := s.summaries.GetOrCreateForUpdate(ctx, tx, models.NewStudentFeeSummary(student, fs, now))
	if err != nil {
		s.failTx(student.StudentID, err)
		return nil, err
	}

	status, pending, total, period := reconcile(summary, fs, kind, req.AmountPaid, now)

	payment := &models.Payment{
		PaymentID:            newPaymentID(),
		StudentID:            student.StudentID,
		StudentName:          student.FullName,
		PaymentType:          kind.Type(),
		AmountPaid:           req.AmountPaid,
		TotalAmount:          total,
		PendingAmount:        pending,
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: req.TransactionReference,
		Remarks:              req.Remarks,
		PaymentPeriod:        period,
		Status:               status,
		PaymentDate:          now,
		CreatedBy:            createdBy,
	}
	switch k := kind.(type) {
	case models.Monthly:
		payment.Month = k.Month
		payment.Year = k.Year
	case models.Annual:
		payment.Year = k.Year
	}

	if err := s.payments.CreateTx(ctx, tx, payment); err != nil {
		s.failTx(student.StudentID, err)
		return nil, err
	}
	if err := s.summaries.SaveTx(ctx, tx, summary); err != nil {
		s.failTx(student.StudentID, err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		s.failTx(student.StudentID, err)
		return nil, err
	}

	cache.InvalidateFeeSummary(ctx, student.StudentID)
	metrics.PaymentsProcessedTotal.WithLabelValues(payment.PaymentType, payment.Status).Inc()
	metrics.PaymentAmountTotal.WithLabelValues(payment.PaymentType).Add(payment.AmountPaid)

	s.logger.Printf("[Payment] %s recorded for student %s: %s %s amount=%s status=%s pending=%s",
		payment.PaymentID, payment.StudentID, payment.PaymentType, payment.PaymentPeriod,
		formatAmount(payment.AmountPaid), payment.Status, formatAmount(payment.PendingAmount))

	return payment, nil
}

// GetStudentPayments returns the student's payment history, newest first.
func (s *PaymentService) GetStudentPayments(ctx context.Context, studentID string) ([]*models.Payment, error) {
	if _, err := s.students.GetByStudentID(ctx, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("student not found: %s", studentID)
		}
		return nil, err
	}
	return s.payments.ListByStudent(ctx, studentID)
}

// GetFeeSummary returns the student's fee summary, serving from the cache
// when it holds a fresh copy.
func (s *PaymentService) GetFeeSummary(ctx context.Context, studentID string) (*models.StudentFeeSummary, error) {
	if data, ok := cache.GetCachedFeeSummary(ctx, studentID); ok {
		var summary models.StudentFeeSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	summary, err := s.summaries.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no fee summary for student: %s", studentID)
		}
		return nil, err
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.CacheFeeSummary(ctx, studentID, data)
	}
	return summary, nil
}

// GetPaymentByID looks up a single payment by its public PAY- identifier.
func (s *PaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("payment not found: %s", paymentID)
		}
		return nil, err
	}
	return payment, nil
}

// GetReceipt builds the receipt view of a payment. The payment's public ID
// doubles as the receipt number.
func (s *PaymentService) GetReceipt(ctx context.Context, paymentID string) (*models.PaymentReceipt, error) {
	payment, err := s.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	className := ""
	if student, err := s.students.GetByStudentID(ctx, payment.StudentID); err == nil {
		className = student.ClassName
	}

	return &models.PaymentReceipt{
		ReceiptNumber:        payment.PaymentID,
		StudentID:            payment.StudentID,
		StudentName:          payment.StudentName,
		ClassName:            className,
		PaymentType:          payment.PaymentType,
		PaymentPeriod:        payment.PaymentPeriod,
		AmountPaid:           payment.AmountPaid,
		PendingAmount:        payment.PendingAmount,
		PaymentMethod:        payment.PaymentMethod,
		TransactionReference: payment.TransactionReference,
		PaymentDate:          payment.PaymentDate,
		Remarks:              payment.Remarks,
		ReceivedBy:           payment.CreatedBy,
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
