package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, t *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(order_id, student_id, payment_type, month, year, amount, status)
         VALUES($1, $2, $3, NULLIF($4, 0), NULLIF($5, 0), $6, $7)
         RETURNING id, created_at, updated_at`,
		t.OrderID, t.StudentID, t.PaymentType, t.Month, t.Year, t.Amount, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, order_id, COALESCE(razorpay_payment_id, ''), student_id, payment_type,
		 COALESCE(month, 0), COALESCE(year, 0), amount, status, COALESCE(payment_record_id, ''),
		 created_at, updated_at
         FROM online_transactions WHERE order_id=$1`, orderID)

	var t models.OnlineTransaction
	err := row.Scan(&t.ID, &t.OrderID, &t.RazorpayPaymentID, &t.StudentID, &t.PaymentType,
		&t.Month, &t.Year, &t.Amount, &t.Status, &t.PaymentRecordID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkPaid records the webhook result and links the Payment record that
// the reconciliation engine produced.
func (r *OnlineTransactionRepository) MarkPaid(ctx context.Context, orderID, razorpayPaymentID, paymentRecordID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status=$1, razorpay_payment_id=$2, payment_record_id=$3,
		 updated_at=CURRENT_TIMESTAMP WHERE order_id=$4`,
		models.OnlineTxnPaid, razorpayPaymentID, paymentRecordID, orderID)
	return err
}

func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, orderID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE order_id=$2`,
		models.OnlineTxnFailed, orderID)
	return err
}
