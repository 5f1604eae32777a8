package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeeStructureRepository struct {
	DB *pgxpool.Pool
}

func NewFeeStructureRepository(db *pgxpool.Pool) *FeeStructureRepository {
	return &FeeStructureRepository{DB: db}
}

// Upsert creates or replaces the fee structure for a class.
func (r *FeeStructureRepository) Upsert(ctx context.Context, fs *models.FeeStructure) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO fee_structures(class_name, admission_fee, monthly_fee, annual_fee,
		 transport_fee, exam_fee, activity_fee, is_active, updated_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, true, $8)
         ON CONFLICT (class_name) DO UPDATE SET
             admission_fee=EXCLUDED.admission_fee,
             monthly_fee=EXCLUDED.monthly_fee,
             annual_fee=EXCLUDED.annual_fee,
             transport_fee=EXCLUDED.transport_fee,
             exam_fee=EXCLUDED.exam_fee,
             activity_fee=EXCLUDED.activity_fee,
             is_active=true,
             updated_by=EXCLUDED.updated_by,
             updated_at=CURRENT_TIMESTAMP
         RETURNING id, is_active, created_at, updated_at`,
		fs.ClassName, fs.AdmissionFee, fs.MonthlyFee, fs.AnnualFee,
		fs.TransportFee, fs.ExamFee, fs.ActivityFee, fs.UpdatedBy,
	).Scan(&fs.ID, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt)
}

func (r *FeeStructureRepository) GetByClassName(ctx context.Context, className string) (*models.FeeStructure, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, class_name, admission_fee, monthly_fee, annual_fee,
		 transport_fee, exam_fee, activity_fee, is_active, COALESCE(updated_by, ''), created_at, updated_at
         FROM fee_structures WHERE class_name=$1`, className)

	var fs models.FeeStructure
	err := row.Scan(&fs.ID, &fs.ClassName, &fs.AdmissionFee, &fs.MonthlyFee, &fs.AnnualFee,
		&fs.TransportFee, &fs.ExamFee, &fs.ActivityFee, &fs.IsActive, &fs.UpdatedBy,
		&fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &fs, nil
}

// GetActiveByClass resolves the active fee structure used when
// reconciling a payment.
func (r *FeeStructureRepository) GetActiveByClass(ctx context.Context, className string) (*models.FeeStructure, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, class_name, admission_fee, monthly_fee, annual_fee,
		 transport_fee, exam_fee, activity_fee, is_active, COALESCE(updated_by, ''), created_at, updated_at
         FROM fee_structures WHERE class_name=$1 AND is_active=true`, className)

	var fs models.FeeStructure
	err := row.Scan(&fs.ID, &fs.ClassName, &fs.AdmissionFee, &fs.MonthlyFee, &fs.AnnualFee,
		&fs.TransportFee, &fs.ExamFee, &fs.ActivityFee, &fs.IsActive, &fs.UpdatedBy,
		&fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &fs, nil
}

func (r *FeeStructureRepository) List(ctx context.Context) ([]*models.FeeStructure, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, class_name, admission_fee, monthly_fee, annual_fee,
		 transport_fee, exam_fee, activity_fee, is_active, COALESCE(updated_by, ''), created_at, updated_at
         FROM fee_structures ORDER BY class_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		var fs models.FeeStructure
		err := rows.Scan(&fs.ID, &fs.ClassName, &fs.AdmissionFee, &fs.MonthlyFee, &fs.AnnualFee,
			&fs.TransportFee, &fs.ExamFee, &fs.ActivityFee, &fs.IsActive, &fs.UpdatedBy,
			&fs.CreatedAt, &fs.UpdatedAt)
		if err != nil {
			return nil, err
		}
		structures = append(structures, &fs)
	}
	return structures, rows.Err()
}

func (r *FeeStructureRepository) Delete(ctx context.Context, className string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM fee_structures WHERE class_name=$1`, className)
	return err
}
