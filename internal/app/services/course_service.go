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

// CourseService defines the interface for course operations
type CourseService interface {
	List(ctx context.Context, filter models.CourseFilter, opts models.ListOptions) (*dto.ListResponse[*dto.CourseResponse], error)
	Get(ctx context.Context, id int64) (*dto.CourseResponse, error)
	Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error)
	Patch(ctx context.Context, id int64, req *dto.PatchCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo     repositories.CourseRepository
	departmentRepo repositories.DepartmentRepository
	logger         zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, departmentRepo repositories.DepartmentRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

func (s *courseServiceImpl) validateCourse(ctx context.Context, c *models.Course) error {
	err := validation.First(
		validation.NewStringValidation("name", c.Name).WithMaxLength(validation.NameMaxLength).Validate(),
		validation.NewStringValidation("code", c.Code).WithMaxLength(validation.CodeMaxLength).WithPattern(validation.CompiledPatterns.Code).Validate(),
		positiveID("department_id", c.DepartmentID),
	)
	if err != nil {
		return err
	}
	_, err = s.departmentRepo.GetByID(ctx, c.DepartmentID)
	return checkReference("department_id", err)
}

func (s *courseServiceImpl) List(ctx context.Context, filter models.CourseFilter, opts models.ListOptions) (*dto.ListResponse[*dto.CourseResponse], error) {
	courses, total, err := s.courseRepo.List(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list courses")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return newPage(courses, total, opts, dto.NewCourseResponse), nil
}

func (s *courseServiceImpl) Get(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseServiceImpl) Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course := &models.Course{Name: req.Name, Code: req.Code, DepartmentID: req.DepartmentID}
	if err := s.validateCourse(ctx, course); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return s.Get(ctx, course.ID)
}

func (s *courseServiceImpl) Update(ctx context.Context, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.save(ctx, &models.Course{ID: id, Name: req.Name, Code: req.Code, DepartmentID: req.DepartmentID})
}

func (s *courseServiceImpl) Patch(ctx context.Context, id int64, req *dto.PatchCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Code != nil {
		course.Code = *req.Code
	}
	if req.DepartmentID != nil {
		course.DepartmentID = *req.DepartmentID
	}
	return s.save(ctx, course)
}

func (s *courseServiceImpl) save(ctx context.Context, course *models.Course) (*dto.CourseResponse, error) {
	if err := s.validateCourse(ctx, course); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return s.Get(ctx, course.ID)
}

func (s *courseServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
