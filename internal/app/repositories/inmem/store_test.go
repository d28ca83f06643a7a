package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

type seeded struct {
	store   *Store
	campus  *models.Campus
	dept    *models.Department
	student *models.Student
	user    *models.User
	officer *models.Officer
	record  *models.GWARecord
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	s := NewStore()
	repos := s.Repositories()

	out := seeded{store: s}
	out.campus = &models.Campus{Name: "Main Campus", Code: "MAIN"}
	require.NoError(t, repos.CampusRepository.Create(ctx, out.campus))
	out.dept = &models.Department{Name: "Computer Science", Code: "CS", CampusID: out.campus.ID}
	require.NoError(t, repos.DepartmentRepository.Create(ctx, out.dept))
	require.NoError(t, repos.CourseRepository.Create(ctx, &models.Course{Name: "Intro", Code: "CS101", DepartmentID: out.dept.ID}))
	out.student = &models.Student{StudentNumber: "2024-001", FirstName: "John", LastName: "Doe", CampusID: out.campus.ID, DepartmentID: out.dept.ID, YearLevel: 1}
	require.NoError(t, repos.StudentRepository.Create(ctx, out.student))
	out.user = &models.User{Username: "officer1", PasswordHash: "x"}
	require.NoError(t, repos.UserRepository.Create(ctx, out.user))
	out.officer = &models.Officer{UserID: out.user.ID, Position: "President", CampusID: out.campus.ID, IsActive: true}
	require.NoError(t, repos.OfficerRepository.Create(ctx, out.officer))
	out.record = &models.GWARecord{StudentID: out.student.ID, Semester: "1st Semester", AcademicYear: "2024-2025", GWA: 1.5, EncodedByID: out.user.ID}
	require.NoError(t, repos.GWARecordRepository.Create(ctx, out.record))
	return out
}

func TestStore_DepartmentDeleteCascades(t *testing.T) {
	ctx := context.Background()
	d := seed(t)
	repos := d.store.Repositories()

	require.NoError(t, repos.DepartmentRepository.Delete(ctx, d.dept.ID))

	courses, total, err := repos.CourseRepository.List(ctx, models.CourseFilter{}, models.ListOptions{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, courses)

	_, err = repos.StudentRepository.GetByID(ctx, d.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = repos.GWARecordRepository.GetByID(ctx, d.record.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	// the campus and its officer survive
	_, err = repos.OfficerRepository.GetByID(ctx, d.officer.ID)
	assert.NoError(t, err)
}

func TestStore_UserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	d := seed(t)
	repos := d.store.Repositories()
	require.NoError(t, repos.TokenRepository.Revoke(ctx, "jti-1", d.user.ID, time.Now().Add(time.Hour)))

	require.NoError(t, repos.UserRepository.Delete(ctx, d.user.ID))

	_, err := repos.OfficerRepository.GetByUserID(ctx, d.user.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = repos.GWARecordRepository.GetByID(ctx, d.record.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	revoked, err := repos.TokenRepository.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestStore_Constraints(t *testing.T) {
	ctx := context.Background()
	d := seed(t)
	repos := d.store.Repositories()

	err := repos.CampusRepository.Create(ctx, &models.Campus{Name: "Main Campus", Code: "OTHER"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = repos.StudentRepository.Create(ctx, &models.Student{StudentNumber: "2024-002", FirstName: "A", LastName: "B", CampusID: 99, DepartmentID: d.dept.ID, YearLevel: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	dup := &models.GWARecord{StudentID: d.student.ID, Semester: "1st Semester", AcademicYear: "2024-2025", GWA: 2, EncodedByID: d.user.ID}
	assert.Equal(t, apperrors.ErrDuplicateRecord, repos.GWARecordRepository.Create(ctx, dup))

	err = repos.OfficerRepository.Create(ctx, &models.Officer{UserID: d.user.ID, Position: "VP", CampusID: d.campus.ID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = repos.UserRepository.Create(ctx, &models.User{Username: "officer1"})
	assert.Equal(t, apperrors.ErrDuplicateUsername, err)
}

func TestStore_RecordViewsAreCopies(t *testing.T) {
	ctx := context.Background()
	d := seed(t)
	repos := d.store.Repositories()

	got, err := repos.GWARecordRepository.GetByID(ctx, d.record.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Student)
	require.NotNil(t, got.EncodedBy)
	assert.Equal(t, "officer1", got.EncodedBy.Username)

	got.GWA = 3
	again, err := repos.GWARecordRepository.GetByID(ctx, d.record.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.5, again.GWA)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	d := seed(t)
	tokens := d.store.Repositories().TokenRepository
	now := time.Now()

	require.NoError(t, tokens.Revoke(ctx, "old", d.user.ID, now.Add(-time.Minute)))
	require.NoError(t, tokens.Revoke(ctx, "new", d.user.ID, now.Add(time.Hour)))
	assert.ErrorIs(t, tokens.Revoke(ctx, "new", d.user.ID, now.Add(time.Hour)), apperrors.ErrTokenRevoked)
	assert.ErrorIs(t, tokens.Revoke(ctx, "orphan", 999, now), apperrors.ErrValidationFailed)

	removed, err := tokens.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	revoked, err := tokens.IsRevoked(ctx, "new")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestOfficerRepository_ListOrdering(t *testing.T) {
	ctx := context.Background()
	d := seed(t)
	repos := d.store.Repositories()

	u2 := &models.User{Username: "officer2", FirstName: "Zed"}
	require.NoError(t, repos.UserRepository.Create(ctx, u2))
	require.NoError(t, repos.OfficerRepository.Create(ctx, &models.Officer{UserID: u2.ID, Position: "Auditor", CampusID: d.campus.ID}))

	list, total, err := repos.OfficerRepository.List(ctx, models.OfficerFilter{}, models.ListOptions{
		Ordering: models.OfficerDefaultOrdering, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "Auditor", list[0].Position)
	assert.Equal(t, "officer2", list[0].User.Username)

	active := true
	list, _, err = repos.OfficerRepository.List(ctx, models.OfficerFilter{IsActive: &active}, models.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "President", list[0].Position)

	list, _, err = repos.OfficerRepository.List(ctx, models.OfficerFilter{}, models.ListOptions{Search: "zed", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
