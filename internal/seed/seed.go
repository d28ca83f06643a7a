package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/honorsociety/internal/app/models"
	appRepos "github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

type departmentSeed struct {
	Name, Code string
	Courses    []appModels.Course
}

type campusSeed struct {
	Name, Code  string
	Departments []departmentSeed
}

var defaultData = []campusSeed{
	{
		Name: "Main Campus", Code: "MAIN",
		Departments: []departmentSeed{
			{Name: "Computer Science", Code: "CS", Courses: []appModels.Course{
				{Name: "Introduction to Programming", Code: "CS101"},
				{Name: "Data Structures", Code: "CS201"},
			}},
			{Name: "Mathematics", Code: "MATH", Courses: []appModels.Course{
				{Name: "Calculus I", Code: "MATH101"},
			}},
		},
	},
	{
		Name: "North Campus", Code: "NORTH",
		Departments: []departmentSeed{
			{Name: "Business Administration", Code: "BA", Courses: []appModels.Course{
				{Name: "Principles of Management", Code: "BA101"},
			}},
		},
	},
}

// all rows fit in one page
var seedLookup = appModels.ListOptions{Page: 1, PageSize: 1000}

// CreateDefaultData creates the default campuses, departments and courses
// when they don't exist. Existing rows are matched by code and left alone.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Campuses/Departments/Courses)...")
	var finalErr error // To collect potential errors without stopping the process

	campuses, _, err := repos.CampusRepository.List(ctx, appModels.CampusFilter{}, seedLookup)
	if err != nil {
		return fmt.Errorf("listing campuses: %w", err)
	}
	departments, _, err := repos.DepartmentRepository.List(ctx, appModels.DepartmentFilter{}, seedLookup)
	if err != nil {
		return fmt.Errorf("listing departments: %w", err)
	}
	courses, _, err := repos.CourseRepository.List(ctx, appModels.CourseFilter{}, seedLookup)
	if err != nil {
		return fmt.Errorf("listing courses: %w", err)
	}

	campusIDs := make(map[string]int64, len(campuses))
	for _, c := range campuses {
		campusIDs[c.Code] = c.ID
	}
	departmentIDs := make(map[string]int64, len(departments))
	for _, d := range departments {
		departmentIDs[d.Code] = d.ID
	}
	courseCodes := make(map[string]bool, len(courses))
	for _, c := range courses {
		courseCodes[c.Code] = true
	}

	created := 0
	for _, cs := range defaultData {
		campusID, ok := campusIDs[cs.Code]
		if !ok {
			campus := &appModels.Campus{Name: cs.Name, Code: cs.Code}
			if err := repos.CampusRepository.Create(ctx, campus); err != nil {
				if !errors.Is(err, apperrors.ErrConflict) {
					lgr.Error().Err(err).Str("code", cs.Code).Msg("Error creating campus")
					finalErr = errors.Join(finalErr, err)
				}
				continue
			}
			campusID = campus.ID
			created++
		}

		for _, ds := range cs.Departments {
			departmentID, ok := departmentIDs[ds.Code]
			if !ok {
				department := &appModels.Department{Name: ds.Name, Code: ds.Code, CampusID: campusID}
				if err := repos.DepartmentRepository.Create(ctx, department); err != nil {
					if !errors.Is(err, apperrors.ErrConflict) {
						lgr.Error().Err(err).Str("code", ds.Code).Msg("Error creating department")
						finalErr = errors.Join(finalErr, err)
					}
					continue
				}
				departmentID = department.ID
				created++
			}

			for _, course := range ds.Courses {
				if courseCodes[course.Code] {
					continue
				}
				c := &appModels.Course{Name: course.Name, Code: course.Code, DepartmentID: departmentID}
				if err := repos.CourseRepository.Create(ctx, c); err != nil {
					if !errors.Is(err, apperrors.ErrConflict) {
						lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating course")
						finalErr = errors.Join(finalErr, err)
					}
					continue
				}
				created++
			}
		}
	}

	lgr.Info().Int("created", created).Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}
