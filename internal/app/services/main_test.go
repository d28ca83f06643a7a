package services

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/app/repositories/inmem"
	"github.com/yigit/honorsociety/internal/pkg/auth"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var nopLogger = zerolog.Nop()

// fixture is a store with one campus, department and student plus an encoder
type fixture struct {
	repos      *repositories.Repositories
	campus     *models.Campus
	department *models.Department
	student    *models.Student
	encoder    *models.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := inmem.NewRepositories()

	campus := &models.Campus{Name: "Main Campus", Code: "MAIN"}
	require.NoError(t, repos.CampusRepository.Create(ctx, campus))

	department := &models.Department{Name: "Computer Science", Code: "CS", CampusID: campus.ID}
	require.NoError(t, repos.DepartmentRepository.Create(ctx, department))

	student := &models.Student{
		StudentNumber: "2024-001",
		FirstName:     "John",
		LastName:      "Doe",
		CampusID:      campus.ID,
		DepartmentID:  department.ID,
		YearLevel:     1,
	}
	require.NoError(t, repos.StudentRepository.Create(ctx, student))

	encoder := &models.User{Username: "encoder", PasswordHash: "x"}
	require.NoError(t, repos.UserRepository.Create(ctx, encoder))

	return &fixture{
		repos:      repos,
		campus:     campus,
		department: department,
		student:    student,
		encoder:    encoder,
	}
}

func (f *fixture) addStudent(t *testing.T, number string) *models.Student {
	t.Helper()
	st := &models.Student{
		StudentNumber: number,
		FirstName:     "Jane",
		LastName:      "Roe",
		CampusID:      f.campus.ID,
		DepartmentID:  f.department.ID,
		YearLevel:     2,
	}
	require.NoError(t, f.repos.StudentRepository.Create(context.Background(), st))
	return st
}

func ptr[T any](v T) *T {
	return &v
}
