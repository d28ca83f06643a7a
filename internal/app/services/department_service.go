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

// DepartmentService defines the interface for department operations
type DepartmentService interface {
	List(ctx context.Context, filter models.DepartmentFilter, opts models.ListOptions) (*dto.ListResponse[*dto.DepartmentResponse], error)
	Get(ctx context.Context, id int64) (*dto.DepartmentResponse, error)
	Create(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	Patch(ctx context.Context, id int64, req *dto.PatchDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type departmentServiceImpl struct {
	departmentRepo repositories.DepartmentRepository
	campusRepo     repositories.CampusRepository
	logger         zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo repositories.DepartmentRepository, campusRepo repositories.CampusRepository, logger zerolog.Logger) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		campusRepo:     campusRepo,
		logger:         logger,
	}
}

// validateDepartment checks the fields and that the campus exists
func (s *departmentServiceImpl) validateDepartment(ctx context.Context, d *models.Department) error {
	err := validation.First(
		validation.NewStringValidation("name", d.Name).WithMaxLength(validation.NameMaxLength).Validate(),
		validation.NewStringValidation("code", d.Code).WithMaxLength(validation.CodeMaxLength).WithPattern(validation.CompiledPatterns.Code).Validate(),
		positiveID("campus_id", d.CampusID),
	)
	if err != nil {
		return err
	}
	_, err = s.campusRepo.GetByID(ctx, d.CampusID)
	return checkReference("campus_id", err)
}

func (s *departmentServiceImpl) List(ctx context.Context, filter models.DepartmentFilter, opts models.ListOptions) (*dto.ListResponse[*dto.DepartmentResponse], error) {
	departments, total, err := s.departmentRepo.List(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list departments")
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	return newPage(departments, total, opts, dto.NewDepartmentResponse), nil
}

func (s *departmentServiceImpl) Get(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponse(department), nil
}

func (s *departmentServiceImpl) Create(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &models.Department{Name: req.Name, Code: req.Code, CampusID: req.CampusID}
	if err := s.validateDepartment(ctx, department); err != nil {
		return nil, err
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("departmentID", department.ID).Str("code", department.Code).Msg("Department created")
	return s.Get(ctx, department.ID)
}

func (s *departmentServiceImpl) Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.save(ctx, &models.Department{ID: id, Name: req.Name, Code: req.Code, CampusID: req.CampusID})
}

func (s *departmentServiceImpl) Patch(ctx context.Context, id int64, req *dto.PatchDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Code != nil {
		department.Code = *req.Code
	}
	if req.CampusID != nil {
		department.CampusID = *req.CampusID
	}
	return s.save(ctx, department)
}

func (s *departmentServiceImpl) save(ctx context.Context, department *models.Department) (*dto.DepartmentResponse, error) {
	if err := s.validateDepartment(ctx, department); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return s.Get(ctx, department.ID)
}

// Delete removes the department with its courses and students
func (s *departmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("departmentID", id).Msg("Department deleted")
	return nil
}
