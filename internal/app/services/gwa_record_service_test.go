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

func newRecordService(f *fixture) GWARecordService {
	return NewGWARecordService(f.repos.GWARecordRepository, f.repos.StudentRepository, nopLogger)
}

func TestGWARecordService_Create(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newRecordService(f)

	got, err := svc.Create(ctx, f.encoder.ID, &dto.GWARecordRequest{
		StudentID:    f.student.ID,
		Semester:     "1st Semester",
		AcademicYear: "2024-2025",
		GWA:          ptr(1.5),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.GWA)
	assert.Equal(t, "encoder", got.EncodedBy)
	require.NotNil(t, got.Student)
	assert.Equal(t, "2024-001", got.Student.StudentNumber)
	assert.False(t, got.CreatedAt.IsZero())

	t.Run("duplicate semester is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, f.encoder.ID, &dto.GWARecordRequest{
			StudentID:    f.student.ID,
			Semester:     "1st Semester",
			AcademicYear: "2024-2025",
			GWA:          ptr(2.0),
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Create(ctx, f.encoder.ID, &dto.GWARecordRequest{
			StudentID:    999,
			Semester:     "2nd Semester",
			AcademicYear: "2024-2025",
			GWA:          ptr(2.0),
		})
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
		ce, ok := apperrors.AsCustomError(err)
		require.True(t, ok)
		assert.Equal(t, "student_id", ce.Field)
	})

	t.Run("gwa out of range", func(t *testing.T) {
		for _, gwa := range []float64{0, -1, 100, 1.234} {
			_, err := svc.Create(ctx, f.encoder.ID, &dto.GWARecordRequest{
				StudentID:    f.student.ID,
				Semester:     "Summer",
				AcademicYear: "2024-2025",
				GWA:          ptr(gwa),
			})
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "gwa %v", gwa)
		}
	})
}

func TestGWARecordService_PatchRestampsEncoder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newRecordService(f)

	created, err := svc.Create(ctx, f.encoder.ID, &dto.GWARecordRequest{
		StudentID: f.student.ID, Semester: "1st Semester", AcademicYear: "2024-2025", GWA: ptr(2.25),
	})
	require.NoError(t, err)

	other := &models.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, f.repos.UserRepository.Create(ctx, other))

	patched, err := svc.Patch(ctx, created.ID, other.ID, &dto.PatchGWARecordRequest{GWA: ptr(1.25)})
	require.NoError(t, err)
	assert.Equal(t, 1.25, patched.GWA)
	assert.Equal(t, "other", patched.EncodedBy)
	assert.Equal(t, "1st Semester", patched.Semester)
	assert.Equal(t, created.CreatedAt, patched.CreatedAt)

	_, err = svc.Patch(ctx, 999, other.ID, &dto.PatchGWARecordRequest{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func seedRecords(t *testing.T, f *fixture, svc GWARecordService, values ...float64) {
	t.Helper()
	for i, v := range values {
		st := f.student
		if i > 0 {
			st = f.addStudent(t, "2024-10"+string(rune('0'+i)))
		}
		_, err := svc.Create(context.Background(), f.encoder.ID, &dto.GWARecordRequest{
			StudentID: st.ID, Semester: "1st Semester", AcademicYear: "2024-2025", GWA: ptr(v),
		})
		require.NoError(t, err)
	}
}

func TestGWARecordService_Statistics(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newRecordService(f)

	empty, err := svc.Statistics(ctx, models.GWARecordFilter{})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRecords)
	assert.Nil(t, empty.AverageGWA)
	assert.Nil(t, empty.HighestGWA)
	assert.Nil(t, empty.LowestGWA)
	assert.Zero(t, empty.HonorEligible)

	seedRecords(t, f, svc, 1.50, 1.75, 2.00)

	stats, err := svc.Statistics(ctx, models.GWARecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRecords)
	require.NotNil(t, stats.AverageGWA)
	assert.InDelta(t, 1.75, *stats.AverageGWA, 1e-9)
	assert.Equal(t, 1.50, *stats.HighestGWA)
	assert.Equal(t, 2.00, *stats.LowestGWA)
	assert.Equal(t, int64(2), stats.HonorEligible)

	other, err := svc.Statistics(ctx, models.GWARecordFilter{AcademicYear: ptr("2023-2024")})
	require.NoError(t, err)
	assert.Zero(t, other.TotalRecords)
}

func TestGWARecordService_HonorEligible(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newRecordService(f)
	seedRecords(t, f, svc, 1.50, 1.75, 2.00)

	gwaAsc := []models.SortField{{Field: "gwa"}}

	got, err := svc.HonorEligible(ctx, models.GWARecordFilter{}, nil, gwaAsc)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1.50, got[0].GWA)
	assert.Equal(t, 1.75, got[1].GWA)

	t.Run("custom threshold", func(t *testing.T) {
		got, err := svc.HonorEligible(ctx, models.GWARecordFilter{}, ptr(1.5), gwaAsc)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1.50, got[0].GWA)
	})

	t.Run("min_gwa filter is ignored", func(t *testing.T) {
		got, err := svc.HonorEligible(ctx, models.GWARecordFilter{MinGWA: ptr(1.7)}, nil, gwaAsc)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("tighter max_gwa wins", func(t *testing.T) {
		got, err := svc.HonorEligible(ctx, models.GWARecordFilter{MaxGWA: ptr(1.6)}, nil, gwaAsc)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestGWARecordService_ListPagination(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newRecordService(f)
	seedRecords(t, f, svc, 1.50, 1.75, 2.00)

	page, err := svc.List(ctx, models.GWARecordFilter{}, models.ListOptions{
		Ordering: []models.SortField{{Field: "gwa", Desc: true}},
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Results, 2)
	assert.Equal(t, 2.00, page.Results[0].GWA)
}
