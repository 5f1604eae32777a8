package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// CreateTx inserts the payment inside the caller's transaction so the
// insert commits or rolls back together with the fee-summary upsert.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *models.Payment) error {
	query := `
		INSERT INTO payments (payment_id, student_id, student_name, payment_type,
			amount_paid, total_amount, pending_amount, payment_method,
			transaction_reference, remarks, payment_period, month, year,
			status, payment_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, 0), NULLIF($13, 0), $14, $15, $16)
		RETURNING id, created_at
	`

	return tx.QueryRow(ctx, query,
		p.PaymentID,
		p.StudentID,
		p.StudentName,
		p.PaymentType,
		p.AmountPaid,
		p.TotalAmount,
		p.PendingAmount,
		p.PaymentMethod,
		p.TransactionReference,
		p.Remarks,
		p.PaymentPeriod,
		p.Month,
		p.Year,
		p.Status,
		p.PaymentDate,
		p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
}

const paymentColumns = `id, payment_id, student_id, student_name, payment_type,
	amount_paid, total_amount, pending_amount, payment_method,
	COALESCE(transaction_reference, ''), COALESCE(remarks, ''), COALESCE(payment_period, ''),
	COALESCE(month, 0), COALESCE(year, 0), status, payment_date, COALESCE(created_by, ''), created_at`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.PaymentID, &p.StudentID, &p.StudentName, &p.PaymentType,
		&p.AmountPaid, &p.TotalAmount, &p.PendingAmount, &p.PaymentMethod,
		&p.TransactionReference, &p.Remarks, &p.PaymentPeriod,
		&p.Month, &p.Year, &p.Status, &p.PaymentDate, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByStudent returns a student's payments, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE student_id=$1 ORDER BY payment_date DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id=$1`, paymentID))
}
