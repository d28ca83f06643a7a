package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/validation"
)

// GWARecordService defines the interface for GWA record operations.
// Writes take the id of the authenticated user, recorded as encoded_by.
type GWARecordService interface {
	List(ctx context.Context, filter models.GWARecordFilter, opts models.ListOptions) (*dto.ListResponse[*dto.GWARecordResponse], error)
	Get(ctx context.Context, id int64) (*dto.GWARecordResponse, error)
	Create(ctx context.Context, encodedBy int64, req *dto.GWARecordRequest) (*dto.GWARecordResponse, error)
	Update(ctx context.Context, id, encodedBy int64, req *dto.GWARecordRequest) (*dto.GWARecordResponse, error)
	Patch(ctx context.Context, id, encodedBy int64, req *dto.PatchGWARecordRequest) (*dto.GWARecordResponse, error)
	Delete(ctx context.Context, id int64) error
	// HonorEligible lists records with gwa <= threshold (default models.HonorThreshold)
	HonorEligible(ctx context.Context, filter models.GWARecordFilter, threshold *float64, ordering []models.SortField) ([]*dto.GWARecordResponse, error)
	Statistics(ctx context.Context, filter models.GWARecordFilter) (*dto.GWAStatisticsResponse, error)
}

type gwaRecordServiceImpl struct {
	recordRepo  repositories.GWARecordRepository
	studentRepo repositories.StudentRepository
	logger      zerolog.Logger
}

// NewGWARecordService creates a new GWA record service instance
func NewGWARecordService(recordRepo repositories.GWARecordRepository, studentRepo repositories.StudentRepository, logger zerolog.Logger) GWARecordService {
	return &gwaRecordServiceImpl{
		recordRepo:  recordRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *gwaRecordServiceImpl) validateRecord(ctx context.Context, r *models.GWARecord) error {
	err := validation.First(
		positiveID("student_id", r.StudentID),
		validation.NewStringValidation("semester", r.Semester).WithMaxLength(validation.SemesterMaxLength).Validate(),
		validation.NewStringValidation("academic_year", r.AcademicYear).WithMaxLength(validation.AcademicYearMaxLength).Validate(),
		validation.ValidateGWA(r.GWA),
	)
	if err != nil {
		return err
	}
	_, err = s.studentRepo.GetByID(ctx, r.StudentID)
	return checkReference("student_id", err)
}

func (s *gwaRecordServiceImpl) List(ctx context.Context, filter models.GWARecordFilter, opts models.ListOptions) (*dto.ListResponse[*dto.GWARecordResponse], error) {
	records, total, err := s.recordRepo.List(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list GWA records")
		return nil, fmt.Errorf("error listing GWA records: %w", err)
	}
	return newPage(records, total, opts, dto.NewGWARecordResponse), nil
}

func (s *gwaRecordServiceImpl) Get(ctx context.Context, id int64) (*dto.GWARecordResponse, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewGWARecordResponse(record), nil
}

func (s *gwaRecordServiceImpl) Create(ctx context.Context, encodedBy int64, req *dto.GWARecordRequest) (*dto.GWARecordResponse, error) {
	record := &models.GWARecord{
		StudentID:    req.StudentID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		EncodedByID:  encodedBy,
	}
	if req.GWA != nil {
		record.GWA = *req.GWA
	}
	if err := s.validateRecord(ctx, record); err != nil {
		return nil, err
	}
	record.GWA = validation.RoundGWA(record.GWA)

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("recordID", record.ID).
		Int64("studentID", record.StudentID).
		Int64("encodedBy", encodedBy).
		Msg("GWA record created")
	return s.Get(ctx, record.ID)
}

func (s *gwaRecordServiceImpl) Update(ctx context.Context, id, encodedBy int64, req *dto.GWARecordRequest) (*dto.GWARecordResponse, error) {
	if _, err := s.recordRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	record := &models.GWARecord{
		ID:           id,
		StudentID:    req.StudentID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	}
	if req.GWA != nil {
		record.GWA = *req.GWA
	}
	return s.save(ctx, record, encodedBy)
}

func (s *gwaRecordServiceImpl) Patch(ctx context.Context, id, encodedBy int64, req *dto.PatchGWARecordRequest) (*dto.GWARecordResponse, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.StudentID != nil {
		record.StudentID = *req.StudentID
	}
	if req.Semester != nil {
		record.Semester = *req.Semester
	}
	if req.AcademicYear != nil {
		record.AcademicYear = *req.AcademicYear
	}
	if req.GWA != nil {
		record.GWA = *req.GWA
	}
	return s.save(ctx, record, encodedBy)
}

// save restamps encoded_by with the current writer
func (s *gwaRecordServiceImpl) save(ctx context.Context, record *models.GWARecord, encodedBy int64) (*dto.GWARecordResponse, error) {
	record.EncodedByID = encodedBy
	if err := s.validateRecord(ctx, record); err != nil {
		return nil, err
	}
	record.GWA = validation.RoundGWA(record.GWA)

	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.Get(ctx, record.ID)
}

func (s *gwaRecordServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.recordRepo.Delete(ctx, id)
}

func (s *gwaRecordServiceImpl) HonorEligible(ctx context.Context, filter models.GWARecordFilter, threshold *float64, ordering []models.SortField) ([]*dto.GWARecordResponse, error) {
	limit := models.HonorThreshold
	if threshold != nil {
		limit = *threshold
	}
	if filter.MaxGWA == nil || *filter.MaxGWA > limit {
		filter.MaxGWA = &limit
	}
	filter.MinGWA = nil

	records, err := s.recordRepo.ListAll(ctx, filter, ordering)
	if err != nil {
		s.logger.Error().Err(err).Float64("threshold", limit).Msg("Failed to list honor-eligible records")
		return nil, fmt.Errorf("error listing honor-eligible records: %w", err)
	}
	return dto.MapSlice(records, dto.NewGWARecordResponse), nil
}

func (s *gwaRecordServiceImpl) Statistics(ctx context.Context, filter models.GWARecordFilter) (*dto.GWAStatisticsResponse, error) {
	stats, err := s.recordRepo.Statistics(ctx, filter, models.HonorThreshold)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute GWA statistics")
		return nil, fmt.Errorf("error computing GWA statistics: %w", err)
	}
	resp := dto.NewGWAStatisticsResponse(stats)
	return &resp, nil
}
