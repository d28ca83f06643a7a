// Package inmem implements the repository interfaces on top of in-process
// maps. One lock guards every table so that uniqueness checks, foreign key
// checks and cascading deletes are atomic, just like the SQL constraints
// they stand in for.
package inmem

import (
	"cmp"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
)

// Store holds every table
type Store struct {
	mu sync.RWMutex

	campuses    map[int64]*models.Campus
	departments map[int64]*models.Department
	courses     map[int64]*models.Course
	students    map[int64]*models.Student
	records     map[int64]*models.GWARecord
	officers    map[int64]*models.Officer
	users       map[int64]*models.User
	revoked     map[string]models.RevokedToken

	pkCount map[string]int64
	now     func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		campuses:    make(map[int64]*models.Campus),
		departments: make(map[int64]*models.Department),
		courses:     make(map[int64]*models.Course),
		students:    make(map[int64]*models.Student),
		records:     make(map[int64]*models.GWARecord),
		officers:    make(map[int64]*models.Officer),
		users:       make(map[int64]*models.User),
		revoked:     make(map[string]models.RevokedToken),
		pkCount:     make(map[string]int64),
		now:         time.Now,
	}
}

// NewRepositories wires every repository to one fresh store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories wires every repository to this store
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Driver:               "memory",
		Health:               s,
		CampusRepository:     &campusRepository{s},
		DepartmentRepository: &departmentRepository{s},
		CourseRepository:     &courseRepository{s},
		StudentRepository:    &studentRepository{s},
		GWARecordRepository:  &gwaRecordRepository{s},
		OfficerRepository:    &officerRepository{s},
		UserRepository:       &userRepository{s},
		TokenRepository:      &tokenRepository{s},
	}
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) nextID(table string) int64 {
	s.pkCount[table]++
	return s.pkCount[table]
}

// matchesSearch is a case-insensitive substring match over fields
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

type comparator[T any] func(a, b T) int

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// sortItems orders items by the given fields, falling back to id
func sortItems[T any](items []T, ordering []models.SortField, cmps map[string]comparator[T], id func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, f := range ordering {
			c, ok := cmps[f.Field]
			if !ok {
				continue
			}
			r := c(items[i], items[j])
			if f.Desc {
				r = -r
			}
			if r != 0 {
				return r < 0
			}
		}
		return cmp.Less(id(items[i]), id(items[j]))
	})
}

// paginate slices one page out of a sorted result
func paginate[T any](items []T, opts models.ListOptions) []T {
	start, end := helpers.CalculateSliceIndices(opts.Page, opts.PageSize, len(items))
	return items[start:end]
}
