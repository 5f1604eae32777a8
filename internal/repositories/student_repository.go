package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository struct {
	DB *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{DB: db}
}

const studentColumns = `id, student_id, first_name, last_name, full_name, COALESCE(email, ''),
	 COALESCE(guardian_name, ''), COALESCE(guardian_contact, ''), COALESCE(address, ''),
	 COALESCE(phone_number, ''), COALESCE(date_of_birth, ''), COALESCE(enrollment_date, ''),
	 class_name, teacher_id, COALESCE(profile_image_url, ''), created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.FullName, &s.Email,
		&s.GuardianName, &s.GuardianContact, &s.Address,
		&s.PhoneNumber, &s.DateOfBirth, &s.EnrollmentDate,
		&s.ClassName, &s.TeacherID, &s.ProfileImageURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO students(student_id, first_name, last_name, full_name, email,
		 guardian_name, guardian_contact, address, phone_number, date_of_birth,
		 enrollment_date, class_name, teacher_id, profile_image_url)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
         RETURNING id, created_at, updated_at`,
		s.StudentID, s.FirstName, s.LastName, s.FullName, s.Email,
		s.GuardianName, s.GuardianContact, s.Address, s.PhoneNumber, s.DateOfBirth,
		s.EnrollmentDate, s.ClassName, s.TeacherID, s.ProfileImageURL,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return scanStudent(r.DB.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id=$1`, studentID))
}

func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	return r.queryStudents(ctx, `SELECT `+studentColumns+` FROM students ORDER BY full_name`)
}

func (r *StudentRepository) ListByClass(ctx context.Context, className string) ([]*models.Student, error) {
	return r.queryStudents(ctx,
		`SELECT `+studentColumns+` FROM students WHERE class_name=$1 ORDER BY full_name`, className)
}

func (r *StudentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Student, error) {
	return r.queryStudents(ctx,
		`SELECT `+studentColumns+` FROM students WHERE teacher_id=$1 ORDER BY full_name`, teacherID)
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE students SET first_name=$1, last_name=$2, full_name=$3, email=$4,
		 guardian_name=$5, guardian_contact=$6, address=$7, phone_number=$8,
		 date_of_birth=$9, enrollment_date=$10, class_name=$11, teacher_id=$12,
		 updated_at=CURRENT_TIMESTAMP
         WHERE student_id=$13`,
		s.FirstName, s.LastName, s.FullName, s.Email,
		s.GuardianName, s.GuardianContact, s.Address, s.PhoneNumber,
		s.DateOfBirth, s.EnrollmentDate, s.ClassName, s.TeacherID, s.StudentID)
	return err
}

func (r *StudentRepository) UpdateProfileImage(ctx context.Context, studentID, imageURL string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE students SET profile_image_url=$1, updated_at=CURRENT_TIMESTAMP WHERE student_id=$2`,
		imageURL, studentID)
	return err
}

// UpdateClassBulk moves every matching student to the given class and
// reports how many rows changed.
func (r *StudentRepository) UpdateClassBulk(ctx context.Context, studentIDs []string, className string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE students SET class_name=$1, updated_at=CURRENT_TIMESTAMP WHERE student_id = ANY($2)`,
		className, studentIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM students WHERE student_id=$1`, studentID)
	return err
}
