package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeeSummaryRepository struct {
	DB *pgxpool.Pool
}

func NewFeeSummaryRepository(db *pgxpool.Pool) *FeeSummaryRepository {
	return &FeeSummaryRepository{DB: db}
}

const feeSummaryColumns = `id, student_id, student_name, class_name,
	admission_fee_total, admission_fee_paid, admission_fee_pending, admission_fee_completed,
	monthly_fees, annual_fees,
	total_fees_amount, total_paid_amount, total_pending_amount,
	last_payment_date, created_at, updated_at`

func scanFeeSummary(row pgx.Row) (*models.StudentFeeSummary, error) {
	var s models.StudentFeeSummary
	var monthlyJSON, annualJSON []byte

	err := row.Scan(&s.ID, &s.StudentID, &s.StudentName, &s.ClassName,
		&s.AdmissionFeeTotal, &s.AdmissionFeePaid, &s.AdmissionFeePending, &s.AdmissionFeeCompleted,
		&monthlyJSON, &annualJSON,
		&s.TotalFeesAmount, &s.TotalPaidAmount, &s.TotalPendingAmount,
		&s.LastPaymentDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(monthlyJSON, &s.MonthlyFees); err != nil {
		return nil, fmt.Errorf("decode monthly fees: %w", err)
	}
	if err := json.Unmarshal(annualJSON, &s.AnnualFees); err != nil {
		return nil, fmt.Errorf("decode annual fees: %w", err)
	}
	if s.MonthlyFees == nil {
		s.MonthlyFees = make(map[string]*models.FeeLedgerEntry)
	}
	if s.AnnualFees == nil {
		s.AnnualFees = make(map[string]*models.FeeLedgerEntry)
	}

	return &s, nil
}

func (r *FeeSummaryRepository) GetByStudentID(ctx context.Context, studentID string) (*models.StudentFeeSummary, error) {
	return scanFeeSummary(r.DB.QueryRow(ctx,
		`SELECT `+feeSummaryColumns+` FROM student_fee_summaries WHERE student_id=$1`, studentID))
}

// GetOrCreateForUpdate returns the student's summary row locked for the
// duration of the transaction, inserting the seed first if none exists.
// The row lock is the per-student guard: two concurrent payments for the
// same student serialize here, while payments for different students
// touch different rows and proceed in parallel.
func (r *FeeSummaryRepository) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, seed *models.StudentFeeSummary) (*models.StudentFeeSummary, error) {
	monthlyJSON, err := json.Marshal(seed.MonthlyFees)
	if err != nil {
		return nil, fmt.Errorf("encode monthly fees: %w", err)
	}
	annualJSON, err := json.Marshal(seed.AnnualFees)
	if err != nil {
		return nil, fmt.Errorf("encode annual fees: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO student_fee_summaries (student_id, student_name, class_name,
			admission_fee_total, admission_fee_paid, admission_fee_pending, admission_fee_completed,
			monthly_fees, annual_fees)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (student_id) DO NOTHING`,
		seed.StudentID, seed.StudentName, seed.ClassName,
		seed.AdmissionFeeTotal, seed.AdmissionFeePaid, seed.AdmissionFeePending, seed.AdmissionFeeCompleted,
		monthlyJSON, annualJSON)
	if err != nil {
		return nil, err
	}

	return scanFeeSummary(tx.QueryRow(ctx,
		`SELECT `+feeSummaryColumns+` FROM student_fee_summaries WHERE student_id=$1 FOR UPDATE`,
		seed.StudentID))
}

// SaveTx writes the reconciled summary back inside the same transaction
// that holds the row lock.
func (r *FeeSummaryRepository) SaveTx(ctx context.Context, tx pgx.Tx, s *models.StudentFeeSummary) error {
	monthlyJSON, err := json.Marshal(s.MonthlyFees)
	if err != nil {
		return fmt.Errorf("encode monthly fees: %w", err)
	}
	annualJSON, err := json.Marshal(s.AnnualFees)
	if err != nil {
		return fmt.Errorf("encode annual fees: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE student_fee_summaries SET
			admission_fee_paid=$1, admission_fee_pending=$2, admission_fee_completed=$3,
			monthly_fees=$4, annual_fees=$5,
			total_fees_amount=$6, total_paid_amount=$7, total_pending_amount=$8,
			last_payment_date=$9, updated_at=CURRENT_TIMESTAMP
		 WHERE student_id=$10`,
		s.AdmissionFeePaid, s.AdmissionFeePending, s.AdmissionFeeCompleted,
		monthlyJSON, annualJSON,
		s.TotalFeesAmount, s.TotalPaidAmount, s.TotalPendingAmount,
		s.LastPaymentDate, s.StudentID)
	return err
}
