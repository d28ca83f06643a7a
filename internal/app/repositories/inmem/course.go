package inmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

var courseComparators = map[string]comparator[*models.Course]{
	"name":             func(a, b *models.Course) int { return strings.Compare(a.Name, b.Name) },
	"code":             func(a, b *models.Course) int { return strings.Compare(a.Code, b.Code) },
	"department__name": func(a, b *models.Course) int { return strings.Compare(a.Department.Name, b.Department.Name) },
}

type courseRepository struct {
	s *Store
}

func (s *Store) courseView(id int64) *models.Course {
	c, ok := s.courses[id]
	if !ok {
		return nil
	}
	cp := *c
	cp.Department = s.departmentView(c.DepartmentID)
	return &cp
}

func (s *Store) checkCourse(c *models.Course) error {
	if _, ok := s.departments[c.DepartmentID]; !ok {
		return repositories.ForeignKeyViolation("courses_department_id_fkey")
	}
	for _, other := range s.courses {
		if other.ID != c.ID && other.Code == c.Code {
			return repositories.UniqueViolation(repositories.ConstraintCourseCode)
		}
	}
	return nil
}

func (r *courseRepository) List(_ context.Context, filter models.CourseFilter, opts models.ListOptions) ([]*models.Course, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Course, 0)
	for id, c := range r.s.courses {
		if filter.DepartmentID != nil && c.DepartmentID != *filter.DepartmentID {
			continue
		}
		view := r.s.courseView(id)
		if matchesSearch(opts.Search, view.Name, view.Code, view.Department.Name) {
			out = append(out, view)
		}
	}
	sortItems(out, opts.Ordering, courseComparators, func(c *models.Course) int64 { return c.ID })
	return paginate(out, opts), int64(len(out)), nil
}

func (r *courseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c := r.s.courseView(id); c != nil {
		return c, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("course %d not found.", id))
}

func (r *courseRepository) Create(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkCourse(course); err != nil {
		return err
	}
	course.ID = r.s.nextID("courses")
	stored := *course
	stored.Department = nil
	r.s.courses[stored.ID] = &stored
	return nil
}

func (r *courseRepository) Update(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[course.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("course %d not found.", course.ID))
	}
	if err := r.s.checkCourse(course); err != nil {
		return err
	}
	stored := *course
	stored.Department = nil
	r.s.courses[stored.ID] = &stored
	return nil
}

func (r *courseRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("course %d not found.", id))
	}
	delete(r.s.courses, id)
	return nil
}
