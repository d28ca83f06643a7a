package repositories_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/migrations"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

// openTestDB connects to DATABASE_URL, migrates and empties the schema.
// Tests using it are skipped when the variable is unset.
func openTestDB(t *testing.T) *repositories.Repositories {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = migrations.NewMigrator(pool, zerolog.Nop()).MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE campuses, users, token_blacklist RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return repositories.NewRepositories(pool)
}

func TestPostgresGWARecords(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()

	campus := &models.Campus{Name: "Main Campus", Code: "MAIN"}
	require.NoError(t, repos.CampusRepository.Create(ctx, campus))
	dept := &models.Department{Name: "Computer Science", Code: "CS", CampusID: campus.ID}
	require.NoError(t, repos.DepartmentRepository.Create(ctx, dept))
	student := &models.Student{StudentNumber: "2024-001", FirstName: "John", LastName: "Doe", CampusID: campus.ID, DepartmentID: dept.ID, YearLevel: 1}
	require.NoError(t, repos.StudentRepository.Create(ctx, student))
	user := &models.User{Username: "officer1", PasswordHash: "x"}
	require.NoError(t, repos.UserRepository.Create(ctx, user))

	for i, gwa := range []float64{1.50, 1.75, 2.00} {
		rec := &models.GWARecord{
			StudentID:    student.ID,
			Semester:     "1st Semester",
			AcademicYear: []string{"2022-2023", "2023-2024", "2024-2025"}[i],
			GWA:          gwa,
			EncodedByID:  user.ID,
		}
		require.NoError(t, repos.GWARecordRepository.Create(ctx, rec))
	}

	dup := &models.GWARecord{StudentID: student.ID, Semester: "1st Semester", AcademicYear: "2022-2023", GWA: 1.0, EncodedByID: user.ID}
	assert.ErrorIs(t, repos.GWARecordRepository.Create(ctx, dup), apperrors.ErrDuplicateRecord)

	stats, err := repos.GWARecordRepository.Statistics(ctx, models.GWARecordFilter{}, models.HonorThreshold)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRecords)
	require.NotNil(t, stats.AverageGWA)
	assert.Equal(t, 1.75, *stats.AverageGWA)
	assert.Equal(t, 1.5, *stats.HighestGWA)
	assert.Equal(t, 2.0, *stats.LowestGWA)
	assert.Equal(t, int64(2), stats.HonorEligible)

	page, total, err := repos.GWARecordRepository.List(ctx, models.GWARecordFilter{}, models.ListOptions{
		Search:   "doe",
		Ordering: models.GWARecordDefaultOrdering,
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-2025", page[0].AcademicYear)
	assert.Equal(t, "MAIN", page[0].Student.Campus.Code)
	assert.Equal(t, "officer1", page[0].EncodedBy.Username)

	_, total, err = repos.GWARecordRepository.List(ctx, models.GWARecordFilter{}, models.ListOptions{Search: "_", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, repos.CampusRepository.Delete(ctx, campus.ID))
	stats, err = repos.GWARecordRepository.Statistics(ctx, models.GWARecordFilter{}, models.HonorThreshold)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRecords)
	assert.Nil(t, stats.AverageGWA)
}
