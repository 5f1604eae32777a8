package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	DB *pgxpool.Pool
}

func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

func (r *TeacherRepository) Create(ctx context.Context, t *models.Teacher) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO teachers(teacher_id, full_name, email, phone, subject, address, hire_date, date_of_birth)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		t.TeacherID, t.FullName, t.Email, t.Phone, t.Subject, t.Address, t.HireDate, t.DateOfBirth,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TeacherRepository) GetByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, teacher_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(subject, ''),
		 COALESCE(address, ''), COALESCE(hire_date, ''), COALESCE(date_of_birth, ''), created_at, updated_at
         FROM teachers WHERE teacher_id=$1`, teacherID)

	var t models.Teacher
	err := row.Scan(&t.ID, &t.TeacherID, &t.FullName, &t.Email, &t.Phone, &t.Subject,
		&t.Address, &t.HireDate, &t.DateOfBirth, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeacherRepository) List(ctx context.Context) ([]*models.Teacher, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, teacher_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(subject, ''),
		 COALESCE(address, ''), COALESCE(hire_date, ''), COALESCE(date_of_birth, ''), created_at, updated_at
         FROM teachers ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var t models.Teacher
		err := rows.Scan(&t.ID, &t.TeacherID, &t.FullName, &t.Email, &t.Phone, &t.Subject,
			&t.Address, &t.HireDate, &t.DateOfBirth, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, &t)
	}
	return teachers, rows.Err()
}

func (r *TeacherRepository) Update(ctx context.Context, t *models.Teacher) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE teachers SET full_name=$1, email=$2, phone=$3, subject=$4, address=$5,
		 hire_date=$6, date_of_birth=$7, updated_at=CURRENT_TIMESTAMP
         WHERE teacher_id=$8`,
		t.FullName, t.Email, t.Phone, t.Subject, t.Address, t.HireDate, t.DateOfBirth, t.TeacherID)
	return err
}

func (r *TeacherRepository) Delete(ctx context.Context, teacherID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM teachers WHERE teacher_id=$1`, teacherID)
	return err
}
