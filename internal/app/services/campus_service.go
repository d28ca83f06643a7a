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

// CampusService defines the interface for campus operations
type CampusService interface {
	List(ctx context.Context, filter models.CampusFilter, opts models.ListOptions) (*dto.ListResponse[*dto.CampusResponse], error)
	Get(ctx context.Context, id int64) (*dto.CampusResponse, error)
	Create(ctx context.Context, req *dto.CampusRequest) (*dto.CampusResponse, error)
	Update(ctx context.Context, id int64, req *dto.CampusRequest) (*dto.CampusResponse, error)
	Patch(ctx context.Context, id int64, req *dto.PatchCampusRequest) (*dto.CampusResponse, error)
	Delete(ctx context.Context, id int64) error
}

type campusServiceImpl struct {
	campusRepo repositories.CampusRepository
	logger     zerolog.Logger
}

// NewCampusService creates a new campus service instance
func NewCampusService(campusRepo repositories.CampusRepository, logger zerolog.Logger) CampusService {
	return &campusServiceImpl{
		campusRepo: campusRepo,
		logger:     logger,
	}
}

func validateCampus(c *models.Campus) error {
	return validation.First(
		validation.NewStringValidation("name", c.Name).WithMaxLength(validation.NameMaxLength).Validate(),
		validation.NewStringValidation("code", c.Code).WithMaxLength(validation.CodeMaxLength).WithPattern(validation.CompiledPatterns.Code).Validate(),
	)
}

func (s *campusServiceImpl) List(ctx context.Context, filter models.CampusFilter, opts models.ListOptions) (*dto.ListResponse[*dto.CampusResponse], error) {
	campuses, total, err := s.campusRepo.List(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list campuses")
		return nil, fmt.Errorf("error listing campuses: %w", err)
	}
	return newPage(campuses, total, opts, dto.NewCampusResponse), nil
}

func (s *campusServiceImpl) Get(ctx context.Context, id int64) (*dto.CampusResponse, error) {
	campus, err := s.campusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCampusResponse(campus), nil
}

func (s *campusServiceImpl) Create(ctx context.Context, req *dto.CampusRequest) (*dto.CampusResponse, error) {
	campus := &models.Campus{Name: req.Name, Code: req.Code}
	if err := validateCampus(campus); err != nil {
		return nil, err
	}

	if err := s.campusRepo.Create(ctx, campus); err != nil {
		s.logger.Debug().Err(err).Str("code", campus.Code).Msg("Campus create rejected")
		return nil, err
	}
	s.logger.Info().Int64("campusID", campus.ID).Str("code", campus.Code).Msg("Campus created")
	return dto.NewCampusResponse(campus), nil
}

func (s *campusServiceImpl) Update(ctx context.Context, id int64, req *dto.CampusRequest) (*dto.CampusResponse, error) {
	if _, err := s.campusRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.save(ctx, &models.Campus{ID: id, Name: req.Name, Code: req.Code})
}

func (s *campusServiceImpl) Patch(ctx context.Context, id int64, req *dto.PatchCampusRequest) (*dto.CampusResponse, error) {
	campus, err := s.campusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		campus.Name = *req.Name
	}
	if req.Code != nil {
		campus.Code = *req.Code
	}
	return s.save(ctx, campus)
}

func (s *campusServiceImpl) save(ctx context.Context, campus *models.Campus) (*dto.CampusResponse, error) {
	if err := validateCampus(campus); err != nil {
		return nil, err
	}
	if err := s.campusRepo.Update(ctx, campus); err != nil {
		return nil, err
	}
	return dto.NewCampusResponse(campus), nil
}

// Delete removes the campus; departments, students and officers under it go too
func (s *campusServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.campusRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("campusID", id).Msg("Campus deleted")
	return nil
}
