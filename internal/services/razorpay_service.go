package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"school-backend/internal/apperr"
	"school-backend/internal/models"
	"school-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService lets guardians pay fees online. An order is created up
// front; the payment record itself is only cut once Razorpay confirms the
// capture, by feeding the confirmed amount through the same reconciliation
// path office payments take.
type RazorpayService struct {
	client         *razorpay.Client
	keyID          string
	keySecret      string
	webhookSecret  string
	transactions   *repositories.OnlineTransactionRepository
	paymentService *PaymentService
	students       StudentFinder
	alerts         AlertSink
	logger         *log.Logger
}

func NewRazorpayService(keyID, keySecret, webhookSecret string,
	transactions *repositories.OnlineTransactionRepository,
	paymentService *PaymentService, students StudentFinder,
	alerts AlertSink, logger *log.Logger) *RazorpayService {
	var client *razorpay.Client
	if keyID != "" && keySecret != "" {
		client = razorpay.NewClient(keyID, keySecret)
	}
	return &RazorpayService{
		client:         client,
		keyID:          keyID,
		keySecret:      keySecret,
		webhookSecret:  webhookSecret,
		transactions:   transactions,
		paymentService: paymentService,
		students:       students,
		alerts:         alerts,
		logger:         logger,
	}
}

// Enabled reports whether online payments are configured.
func (s *RazorpayService) Enabled() bool {
	return s.client != nil
}

// rupeesToPaise converts a rupee amount to paise. Truncation would lose a
// paisa on amounts like 1099.35, so the float error is rounded away; the
// order then matches the rupee amount booked on capture.
func rupeesToPaise(amount float64) int {
	return int(math.Round(amount * 100))
}

type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   int     `json:"amount"` // paise
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	Student  string  `json:"student_name"`
	Rupees   float64 `json:"amount_rupees"`
}

// CreateOrder opens a Razorpay order for a fee payment and records the
// pending transaction.
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*CreateOrderResponse, error) {
	if !s.Enabled() {
		return nil, apperr.BadRequest("online payments are not configured")
	}

	// Validate the fee kind before taking money for it.
	kind, err := models.ParseFeeKind(req.PaymentType, req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("student not found: %s", req.StudentID)
		}
		return nil, err
	}

	amountPaise := rupeesToPaise(req.Amount)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("fee_%s_%d", student.StudentID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"student_id":   student.StudentID,
			"payment_type": kind.Type(),
		},
	}
	order, err := s.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	txn := &models.OnlineTransaction{
		OrderID:     orderID,
		StudentID:   student.StudentID,
		PaymentType: kind.Type(),
		Amount:      req.Amount,
		Status:      models.OnlineTxnCreated,
	}
	switch k := kind.(type) {
	case models.Monthly:
		txn.Month = k.Month
		txn.Year = k.Year
	case models.Annual:
		txn.Year = k.Year
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("store transaction: %w", err)
	}

	s.logger.Printf("[Razorpay] order %s created for student %s (%s, %.2f)",
		orderID, student.StudentID, kind.Type(), req.Amount)

	return &CreateOrderResponse{
		OrderID:  orderID,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    s.keyID,
		Student:  student.FullName,
		Rupees:   req.Amount,
	}, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against
// the raw body.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles a verified Razorpay event.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	entity := webhookPaymentEntity(payload)
	orderID, _ := entity["order_id"].(string)
	if orderID == "" {
		return apperr.BadRequest("webhook payload missing order_id")
	}

	switch event {
	case "payment.captured":
		paymentID, _ := entity["id"].(string)
		if err := s.handleCaptured(ctx, orderID, paymentID); err != nil {
			// Money has moved but the books have not; this needs a human.
			if s.alerts != nil {
				s.alerts.RaiseAlert("critical", "online_payment_failure",
					fmt.Sprintf("captured order %s not recorded: %v", orderID, err))
			}
			return err
		}
		return nil
	case "payment.failed":
		s.logger.Printf("[Razorpay] payment failed for order %s", orderID)
		return s.transactions.MarkFailed(ctx, orderID)
	default:
		s.logger.Printf("[Razorpay] ignoring webhook event %s", event)
		return nil
	}
}

func (s *RazorpayService) handleCaptured(ctx context.Context, orderID, razorpayPaymentID string) error {
	txn, err := s.transactions.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("unknown order: %s", orderID)
		}
		return err
	}
	if txn.Status == models.OnlineTxnPaid {
		// Webhooks can be delivered more than once.
		return nil
	}

	req := &models.CreatePaymentRequest{
		StudentID:            txn.StudentID,
		PaymentType:          txn.PaymentType,
		AmountPaid:           txn.Amount,
		PaymentMethod:        models.PaymentMethodOnline,
		TransactionReference: razorpayPaymentID,
	}
	if txn.Month != 0 {
		req.Month = &txn.Month
	}
	if txn.Year != 0 {
		req.Year = &txn.Year
	}

	payment, err := s.paymentService.ProcessPayment(ctx, req, "razorpay")
	if err != nil {
		return fmt.Errorf("record online payment for order %s: %w", orderID, err)
	}

	if err := s.transactions.MarkPaid(ctx, orderID, razorpayPaymentID, payment.PaymentID); err != nil {
		return err
	}
	s.logger.Printf("[Razorpay] order %s captured, payment %s recorded", orderID, payment.PaymentID)
	return nil
}

// GetTransaction returns the state of one online transaction.
func (s *RazorpayService) GetTransaction(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	txn, err := s.transactions.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("transaction not found: %s", orderID)
		}
		return nil, err
	}
	return txn, nil
}

// webhookPaymentEntity digs the payment entity out of Razorpay's nested
// webhook payload shape.
func webhookPaymentEntity(payload map[string]interface{}) map[string]interface{} {
	if p, ok := payload["payment"].(map[string]interface{}); ok {
		if e, ok := p["entity"].(map[string]interface{}); ok {
			return e
		}
		return p
	}
	return payload
}
