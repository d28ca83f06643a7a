package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories/inmem"
)

func TestCreateDefaultData_Idempotent(t *testing.T) {
	ctx := context.Background()
	repos := inmem.NewRepositories()

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))

	_, campuses, err := repos.CampusRepository.List(ctx, appModels.CampusFilter{}, seedLookup)
	require.NoError(t, err)
	assert.Equal(t, int64(2), campuses)

	_, departments, err := repos.DepartmentRepository.List(ctx, appModels.DepartmentFilter{}, seedLookup)
	require.NoError(t, err)
	assert.Equal(t, int64(3), departments)

	courses, total, err := repos.CourseRepository.List(ctx, appModels.CourseFilter{}, seedLookup)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	for _, c := range courses {
		require.NotNil(t, c.Department)
		if c.Code == "BA101" {
			assert.Equal(t, "BA", c.Department.Code)
		}
	}
}
