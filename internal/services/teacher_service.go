package services

import (
	"context"
	"errors"
	"log"

	"school-backend/internal/apperr"
	"school-backend/internal/models"
	"school-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type TeacherService struct {
	teachers *repositories.TeacherRepository
	logger   *log.Logger
}

func NewTeacherService(teachers *repositories.TeacherRepository, logger *log.Logger) *TeacherService {
	return &TeacherService{teachers: teachers, logger: logger}
}

func (s *TeacherService) Create(ctx context.Context, req *models.CreateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		TeacherID:   req.TeacherID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Address:     req.Address,
		HireDate:    req.HireDate,
		DateOfBirth: req.DateOfBirth,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("teacher already exists: %s", req.TeacherID)
		}
		return nil, err
	}

	s.logger.Printf("[Teacher] registered %s (%s)", teacher.TeacherID, teacher.FullName)
	return teacher, nil
}

func (s *TeacherService) Get(ctx context.Context, teacherID string) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("teacher not found: %s", teacherID)
		}
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherService) List(ctx context.Context) ([]*models.Teacher, error) {
	return s.teachers.List(ctx)
}

func (s *TeacherService) Update(ctx context.Context, teacherID string, req *models.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.Get(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	applyString(&teacher.FullName, req.FullName)
	applyString(&teacher.Email, req.Email)
	applyString(&teacher.Phone, req.Phone)
	applyString(&teacher.Subject, req.Subject)
	applyString(&teacher.Address, req.Address)
	applyString(&teacher.HireDate, req.HireDate)
	applyString(&teacher.DateOfBirth, req.DateOfBirth)

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherService) Delete(ctx context.Context, teacherID string) error {
	if _, err := s.Get(ctx, teacherID); err != nil {
		return err
	}
	return s.teachers.Delete(ctx, teacherID)
}
