package services

import (
	"context"
	"errors"
	"log"

	"school-backend/internal/apperr"
	"school-backend/internal/models"
	"school-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type FeeStructureService struct {
	feeStructures *repositories.FeeStructureRepository
	logger        *log.Logger
}

func NewFeeStructureService(feeStructures *repositories.FeeStructureRepository, logger *log.Logger) *FeeStructureService {
	return &FeeStructureService{feeStructures: feeStructures, logger: logger}
}

// Save creates or replaces the fee structure for a class. Existing
// payments and summaries keep the amounts they snapshotted.
func (s *FeeStructureService) Save(ctx context.Context, req *models.FeeStructureRequest, updatedBy string) (*models.FeeStructure, error) {
	fs := &models.FeeStructure{
		ClassName:    req.ClassName,
		AdmissionFee: req.AdmissionFee,
		MonthlyFee:   req.MonthlyFee,
		AnnualFee:    req.AnnualFee,
		TransportFee: req.TransportFee,
		ExamFee:      req.ExamFee,
		ActivityFee:  req.ActivityFee,
		IsActive:     true,
		UpdatedBy:    updatedBy,
	}
	if err := s.feeStructures.Upsert(ctx, fs); err != nil {
		return nil, err
	}

	s.logger.Printf("[FeeStructure] class %s updated by %s", fs.ClassName, updatedBy)
	return s.Get(ctx, req.ClassName)
}

func (s *FeeStructureService) Get(ctx context.Context, className string) (*models.FeeStructure, error) {
	fs, err := s.feeStructures.GetByClassName(ctx, className)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("fee structure not found for class: %s", className)
		}
		return nil, err
	}
	return fs, nil
}

func (s *FeeStructureService) List(ctx context.Context) ([]*models.FeeStructure, error) {
	return s.feeStructures.List(ctx)
}

// Delete deactivates the class's fee structure; new payments for the class
// are rejected until a new structure is saved.
func (s *FeeStructureService) Delete(ctx context.Context, className string) error {
	if _, err := s.Get(ctx, className); err != nil {
		return err
	}
	return s.feeStructures.Delete(ctx, className)
}
