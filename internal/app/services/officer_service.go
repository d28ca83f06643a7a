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

// OfficerService defines the interface for officer operations.
// is_active and is_verified are never written here.
type OfficerService interface {
	List(ctx context.Context, filter models.OfficerFilter, opts models.ListOptions) (*dto.ListResponse[*dto.OfficerResponse], error)
	Get(ctx context.Context, id int64) (*dto.OfficerResponse, error)
	Create(ctx context.Context, req *dto.OfficerRequest) (*dto.OfficerResponse, error)
	Update(ctx context.Context, id int64, req *dto.OfficerRequest) (*dto.OfficerResponse, error)
	Patch(ctx context.Context, id int64, req *dto.PatchOfficerRequest) (*dto.OfficerResponse, error)
	Delete(ctx context.Context, id int64) error
}

type officerServiceImpl struct {
	officerRepo repositories.OfficerRepository
	userRepo    repositories.UserRepository
	campusRepo  repositories.CampusRepository
	logger      zerolog.Logger
}

// NewOfficerService creates a new officer service instance
func NewOfficerService(
	officerRepo repositories.OfficerRepository,
	userRepo repositories.UserRepository,
	campusRepo repositories.CampusRepository,
	logger zerolog.Logger,
) OfficerService {
	return &officerServiceImpl{
		officerRepo: officerRepo,
		userRepo:    userRepo,
		campusRepo:  campusRepo,
		logger:      logger,
	}
}

func (s *officerServiceImpl) validateOfficer(ctx context.Context, o *models.Officer) error {
	err := validation.First(
		positiveID("user_id", o.UserID),
		validation.NewStringValidation("position", o.Position).WithMaxLength(validation.PositionMaxLength).Validate(),
		positiveID("campus_id", o.CampusID),
	)
	if err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, o.UserID); err != nil {
		return checkReference("user_id", err)
	}
	_, err = s.campusRepo.GetByID(ctx, o.CampusID)
	return checkReference("campus_id", err)
}

func (s *officerServiceImpl) List(ctx context.Context, filter models.OfficerFilter, opts models.ListOptions) (*dto.ListResponse[*dto.OfficerResponse], error) {
	officers, total, err := s.officerRepo.List(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list officers")
		return nil, fmt.Errorf("error listing officers: %w", err)
	}
	return newPage(officers, total, opts, dto.NewOfficerResponse), nil
}

func (s *officerServiceImpl) Get(ctx context.Context, id int64) (*dto.OfficerResponse, error) {
	officer, err := s.officerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOfficerResponse(officer), nil
}

// Create adds an officer; it starts active and unverified
func (s *officerServiceImpl) Create(ctx context.Context, req *dto.OfficerRequest) (*dto.OfficerResponse, error) {
	officer := &models.Officer{
		UserID:   req.UserID,
		Position: req.Position,
		CampusID: req.CampusID,
		IsActive: true,
	}
	if err := s.validateOfficer(ctx, officer); err != nil {
		return nil, err
	}
	if err := s.officerRepo.Create(ctx, officer); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("officerID", officer.ID).Int64("userID", officer.UserID).Msg("Officer created")
	return s.Get(ctx, officer.ID)
}

func (s *officerServiceImpl) Update(ctx context.Context, id int64, req *dto.OfficerRequest) (*dto.OfficerResponse, error) {
	existing, err := s.officerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.UserID = req.UserID
	existing.Position = req.Position
	existing.CampusID = req.CampusID
	return s.save(ctx, existing)
}

func (s *officerServiceImpl) Patch(ctx context.Context, id int64, req *dto.PatchOfficerRequest) (*dto.OfficerResponse, error) {
	officer, err := s.officerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserID != nil {
		officer.UserID = *req.UserID
	}
	if req.Position != nil {
		officer.Position = *req.Position
	}
	if req.CampusID != nil {
		officer.CampusID = *req.CampusID
	}
	return s.save(ctx, officer)
}

func (s *officerServiceImpl) save(ctx context.Context, officer *models.Officer) (*dto.OfficerResponse, error) {
	if err := s.validateOfficer(ctx, officer); err != nil {
		return nil, err
	}
	if err := s.officerRepo.Update(ctx, officer); err != nil {
		return nil, err
	}
	return s.Get(ctx, officer.ID)
}

func (s *officerServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.officerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("officerID", id).Msg("Officer deleted")
	return nil
}
