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

// StudentService defines the interface for student operations
type StudentService interface {
	List(ctx context.Context, filter models.StudentFilter, opts models.ListOptions) (*dto.ListResponse[*dto.StudentResponse], error)
	Get(ctx context.Context, id int64) (*dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentResponse, error)
	Patch(ctx context.Context, id int64, req *dto.PatchStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	studentRepo    repositories.StudentRepository
	campusRepo     repositories.CampusRepository
	departmentRepo repositories.DepartmentRepository
	logger         zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo repositories.StudentRepository,
	campusRepo repositories.CampusRepository,
	departmentRepo repositories.DepartmentRepository,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		campusRepo:     campusRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// validateStudent checks the fields, then the campus and department references
func (s *studentServiceImpl) validateStudent(ctx context.Context, st *models.Student) error {
	err := validation.First(
		validation.NewStringValidation("student_number", st.StudentNumber).WithMaxLength(validation.StudentNumberMaxLength).Validate(),
		validation.NewStringValidation("first_name", st.FirstName).WithMaxLength(validation.PersonNameMaxLength).Validate(),
		validation.NewStringValidation("last_name", st.LastName).WithMaxLength(validation.PersonNameMaxLength).Validate(),
		validation.NewNumericValidation("year_level", int64(st.YearLevel)).WithMin(1).Validate(),
		positiveID("campus_id", st.CampusID),
		positiveID("department_id", st.DepartmentID),
	)
	if err != nil {
		return err
	}

	if _, err := s.campusRepo.GetByID(ctx, st.CampusID); err != nil {
		return checkReference("campus_id", err)
	}
	_, err = s.departmentRepo.GetByID(ctx, st.DepartmentID)
	return checkReference("department_id", err)
}

func (s *studentServiceImpl) List(ctx context.Context, filter models.StudentFilter, opts models.ListOptions) (*dto.ListResponse[*dto.StudentResponse], error) {
	students, total, err := s.studentRepo.List(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return newPage(students, total, opts, dto.NewStudentResponse), nil
}

func (s *studentServiceImpl) Get(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentServiceImpl) Create(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	student := &models.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CampusID:      req.CampusID,
		DepartmentID:  req.DepartmentID,
		YearLevel:     req.YearLevel,
	}
	if err := s.validateStudent(ctx, student); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("studentID", student.ID).Str("studentNumber", student.StudentNumber).Msg("Student created")
	return s.Get(ctx, student.ID)
}

func (s *studentServiceImpl) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.save(ctx, &models.Student{
		ID:            id,
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CampusID:      req.CampusID,
		DepartmentID:  req.DepartmentID,
		YearLevel:     req.YearLevel,
	})
}

func (s *studentServiceImpl) Patch(ctx context.Context, id int64, req *dto.PatchStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.StudentNumber != nil {
		student.StudentNumber = *req.StudentNumber
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.CampusID != nil {
		student.CampusID = *req.CampusID
	}
	if req.DepartmentID != nil {
		student.DepartmentID = *req.DepartmentID
	}
	if req.YearLevel != nil {
		student.YearLevel = *req.YearLevel
	}
	return s.save(ctx, student)
}

func (s *studentServiceImpl) save(ctx context.Context, student *models.Student) (*dto.StudentResponse, error) {
	if err := s.validateStudent(ctx, student); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.Get(ctx, student.ID)
}

// Delete removes the student and every GWA record for them
func (s *studentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
