package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"school-backend/internal/apperr"
	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// StudentStore is satisfied by *repositories.StudentRepository.
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	ListByClass(ctx context.Context, className string) ([]*models.Student, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Student, error)
	Update(ctx context.Context, s *models.Student) error
	UpdateProfileImage(ctx context.Context, studentID, imageURL string) error
	UpdateClassBulk(ctx context.Context, studentIDs []string, className string) (int64, error)
	Delete(ctx context.Context, studentID string) error
}

type TeacherFinder interface {
	GetByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error)
}

type StudentService struct {
	students StudentStore
	teachers TeacherFinder
	logger   *log.Logger
}

func NewStudentService(students StudentStore, teachers TeacherFinder, logger *log.Logger) *StudentService {
	return &StudentService{students: students, teachers: teachers, logger: logger}
}

// Create registers a new student under an existing teacher. The full name
// defaults to "First Last" when not supplied.
func (s *StudentService) Create(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error) {
	if _, err := s.teachers.GetByTeacherID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.BadRequest("teacher not found: %s", req.TeacherID)
		}
		return nil, err
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}

	student := &models.Student{
		StudentID:       req.StudentID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		FullName:        fullName,
		Email:           req.Email,
		GuardianName:    req.GuardianName,
		GuardianContact: req.GuardianContact,
		Address:         req.Address,
		PhoneNumber:     req.PhoneNumber,
		DateOfBirth:     req.DateOfBirth,
		EnrollmentDate:  req.EnrollmentDate,
		ClassName:       req.ClassName,
		TeacherID:       req.TeacherID,
	}
	if err := s.students.Create(ctx, student); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("student already exists: %s", req.StudentID)
		}
		return nil, err
	}

	s.logger.Printf("[Student] registered %s (%s) in class %s", student.StudentID, student.FullName, student.ClassName)
	return student, nil
}

func (s *StudentService) Get(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("student not found: %s", studentID)
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) ListByClass(ctx context.Context, className string) ([]*models.Student, error) {
	return s.students.ListByClass(ctx, className)
}

func (s *StudentService) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Student, error) {
	return s.students.ListByTeacher(ctx, teacherID)
}

// Update applies the non-nil fields of req to the student. Moving a
// student to another teacher re-checks that the teacher exists.
func (s *StudentService) Update(ctx context.Context, studentID string, req *models.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.TeacherID != nil && *req.TeacherID != student.TeacherID {
		if _, err := s.teachers.GetByTeacherID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.BadRequest("teacher not found: %s", *req.TeacherID)
			}
			return nil, err
		}
		student.TeacherID = *req.TeacherID
	}

	applyString(&student.FirstName, req.FirstName)
	applyString(&student.LastName, req.LastName)
	applyString(&student.FullName, req.FullName)
	applyString(&student.Email, req.Email)
	applyString(&student.GuardianName, req.GuardianName)
	applyString(&student.GuardianContact, req.GuardianContact)
	applyString(&student.Address, req.Address)
	applyString(&student.PhoneNumber, req.PhoneNumber)
	applyString(&student.DateOfBirth, req.DateOfBirth)
	applyString(&student.EnrollmentDate, req.EnrollmentDate)
	applyString(&student.ClassName, req.ClassName)

	if req.FullName == nil && (req.FirstName != nil || req.LastName != nil) {
		student.FullName = strings.TrimSpace(student.FirstName + " " + student.LastName)
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// BulkUpdateClass moves the listed students to a new class and returns
// how many were actually moved.
func (s *StudentService) BulkUpdateClass(ctx context.Context, req *models.BulkUpdateClassRequest) (int, error) {
	updated, err := s.students.UpdateClassBulk(ctx, req.StudentIDs, req.NewClass)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, apperr.NotFound("no matching students")
	}
	s.logger.Printf("[Student] moved %d of %d students to class %s", updated, len(req.StudentIDs), req.NewClass)
	return int(updated), nil
}

func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	if _, err := s.Get(ctx, studentID); err != nil {
		return err
	}
	return s.students.Delete(ctx, studentID)
}

func (s *StudentService) SetProfileImage(ctx context.Context, studentID, imageURL string) error {
	if _, err := s.Get(ctx, studentID); err != nil {
		return err
	}
	return s.students.UpdateProfileImage(ctx, studentID, imageURL)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
