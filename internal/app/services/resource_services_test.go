package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

func TestCampusService(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := NewCampusService(f.repos.CampusRepository, nopLogger)

	north, err := svc.Create(ctx, &dto.CampusRequest{Name: "North Campus", Code: "NORTH"})
	require.NoError(t, err)
	assert.Positive(t, north.ID)

	_, err = svc.Create(ctx, &dto.CampusRequest{Name: "Another", Code: "MAIN"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	ce, _ := apperrors.AsCustomError(err)
	assert.Equal(t, "code", ce.Field)

	_, err = svc.Create(ctx, &dto.CampusRequest{Name: "Bad", Code: "has space"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	patched, err := svc.Patch(ctx, north.ID, &dto.PatchCampusRequest{Name: ptr("North")})
	require.NoError(t, err)
	assert.Equal(t, "North", patched.Name)
	assert.Equal(t, "NORTH", patched.Code)

	page, err := svc.List(ctx, models.CampusFilter{}, models.ListOptions{
		Search:   "nor",
		Ordering: models.CampusDefaultOrdering,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "North", page.Results[0].Name)

	require.NoError(t, svc.Delete(ctx, north.ID))
	_, err = svc.Get(ctx, north.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCampusService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	records := newRecordService(f)
	seedRecords(t, f, records, 1.25)

	svc := NewCampusService(f.repos.CampusRepository, nopLogger)
	require.NoError(t, svc.Delete(ctx, f.campus.ID))

	_, err := f.repos.DepartmentRepository.GetByID(ctx, f.department.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = f.repos.StudentRepository.GetByID(ctx, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	stats, err := records.Statistics(ctx, models.GWARecordFilter{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRecords)
}

func TestDepartmentService_References(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := NewDepartmentService(f.repos.DepartmentRepository, f.repos.CampusRepository, nopLogger)

	_, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Physics", Code: "PHYS", CampusID: 999})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, _ := apperrors.AsCustomError(err)
	assert.Equal(t, "campus_id", ce.Field)
	assert.Equal(t, "Invalid campus_id - object does not exist.", ce.Message)

	dept, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Physics", Code: "PHYS", CampusID: f.campus.ID})
	require.NoError(t, err)
	require.NotNil(t, dept.Campus)
	assert.Equal(t, "MAIN", dept.Campus.Code)

	_, err = svc.Update(ctx, 999, &dto.DepartmentRequest{Name: "X", Code: "X", CampusID: f.campus.ID})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStudentService_Validation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := NewStudentService(f.repos.StudentRepository, f.repos.CampusRepository, f.repos.DepartmentRepository, nopLogger)

	req := &dto.StudentRequest{
		StudentNumber: "2024-002",
		FirstName:     "Ana",
		LastName:      "Santos",
		CampusID:      f.campus.ID,
		DepartmentID:  f.department.ID,
		YearLevel:     0,
	}
	_, err := svc.Create(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, _ := apperrors.AsCustomError(err)
	assert.Equal(t, "year_level", ce.Field)

	req.YearLevel = 3
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", created.Department.Name)

	req.StudentNumber = "2024-001"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	page, err := svc.List(ctx, models.StudentFilter{YearLevel: ptr(3)}, models.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)
}

func TestOfficerService_FlagsAreReadOnly(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := NewOfficerService(f.repos.OfficerRepository, f.repos.UserRepository, f.repos.CampusRepository, nopLogger)

	created, err := svc.Create(ctx, &dto.OfficerRequest{UserID: f.encoder.ID, Position: "President", CampusID: f.campus.ID})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsVerified)
	assert.Equal(t, "encoder", created.User.Username)

	require.NoError(t, f.repos.OfficerRepository.SetStatus(ctx, created.ID, true, true))

	patched, err := svc.Patch(ctx, created.ID, &dto.PatchOfficerRequest{Position: ptr("Treasurer")})
	require.NoError(t, err)
	assert.Equal(t, "Treasurer", patched.Position)
	assert.True(t, patched.IsVerified)

	_, err = svc.Create(ctx, &dto.OfficerRequest{UserID: f.encoder.ID, Position: "Auditor", CampusID: f.campus.ID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Create(ctx, &dto.OfficerRequest{UserID: 999, Position: "Auditor", CampusID: f.campus.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := NewCourseService(f.repos.CourseRepository, f.repos.DepartmentRepository, nopLogger)

	_, err := svc.Create(ctx, &dto.CourseRequest{Name: "Algorithms", Code: "CS301", DepartmentID: 999})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, _ := apperrors.AsCustomError(err)
	assert.Equal(t, "department_id", ce.Field)

	course, err := svc.Create(ctx, &dto.CourseRequest{Name: "Algorithms", Code: "CS301", DepartmentID: f.department.ID})
	require.NoError(t, err)
	require.NotNil(t, course.Department)
	assert.Equal(t, "CS", course.Department.Code)

	_, err = svc.Create(ctx, &dto.CourseRequest{Name: "Algorithms II", Code: "CS301", DepartmentID: f.department.ID})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	ce, _ = apperrors.AsCustomError(err)
	assert.Equal(t, "code", ce.Field)

	patched, err := svc.Patch(ctx, course.ID, &dto.PatchCourseRequest{Name: ptr("Advanced Algorithms")})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Algorithms", patched.Name)
	assert.Equal(t, "CS301", patched.Code)

	page, err := svc.List(ctx, models.CourseFilter{DepartmentID: &f.department.ID}, models.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Count)

	other := int64(999)
	page, err = svc.List(ctx, models.CourseFilter{DepartmentID: &other}, models.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Results)

	require.NoError(t, svc.Delete(ctx, course.ID))
	assert.ErrorIs(t, svc.Delete(ctx, course.ID), apperrors.ErrResourceNotFound)
}
