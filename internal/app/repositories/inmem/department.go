package inmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

var departmentComparators = map[string]comparator[*models.Department]{
	"name":         func(a, b *models.Department) int { return strings.Compare(a.Name, b.Name) },
	"code":         func(a, b *models.Department) int { return strings.Compare(a.Code, b.Code) },
	"campus__name": func(a, b *models.Department) int { return strings.Compare(a.Campus.Name, b.Campus.Name) },
}

type departmentRepository struct {
	s *Store
}

func (s *Store) departmentView(id int64) *models.Department {
	d, ok := s.departments[id]
	if !ok {
		return nil
	}
	cp := *d
	cp.Campus = s.campusView(d.CampusID)
	return &cp
}

func (s *Store) checkDepartment(d *models.Department) error {
	if _, ok := s.campuses[d.CampusID]; !ok {
		return repositories.ForeignKeyViolation("departments_campus_id_fkey")
	}
	for _, other := range s.departments {
		if other.ID == d.ID {
			continue
		}
		if other.Name == d.Name {
			return repositories.UniqueViolation(repositories.ConstraintDepartmentName)
		}
		if other.Code == d.Code {
			return repositories.UniqueViolation(repositories.ConstraintDepartmentCode)
		}
	}
	return nil
}

func (r *departmentRepository) List(_ context.Context, filter models.DepartmentFilter, opts models.ListOptions) ([]*models.Department, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Department, 0)
	for id, d := range r.s.departments {
		if filter.CampusID != nil && d.CampusID != *filter.CampusID {
			continue
		}
		view := r.s.departmentView(id)
		if matchesSearch(opts.Search, view.Name, view.Code, view.Campus.Name) {
			out = append(out, view)
		}
	}
	sortItems(out, opts.Ordering, departmentComparators, func(d *models.Department) int64 { return d.ID })
	return paginate(out, opts), int64(len(out)), nil
}

func (r *departmentRepository) GetByID(_ context.Context, id int64) (*models.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if d := r.s.departmentView(id); d != nil {
		return d, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("department %d not found.", id))
}

func (r *departmentRepository) Create(_ context.Context, department *models.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkDepartment(department); err != nil {
		return err
	}
	department.ID = r.s.nextID("departments")
	stored := *department
	stored.Campus = nil
	r.s.departments[stored.ID] = &stored
	return nil
}

func (r *departmentRepository) Update(_ context.Context, department *models.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[department.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("department %d not found.", department.ID))
	}
	if err := r.s.checkDepartment(department); err != nil {
		return err
	}
	stored := *department
	stored.Campus = nil
	r.s.departments[stored.ID] = &stored
	return nil
}

func (r *departmentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("department %d not found.", id))
	}
	r.s.deleteDepartment(id)
	return nil
}

// deleteDepartment cascades to courses and students
func (s *Store) deleteDepartment(id int64) {
	for cid, c := range s.courses {
		if c.DepartmentID == id {
			delete(s.courses, cid)
		}
	}
	for sid, st := range s.students {
		if st.DepartmentID == id {
			s.deleteStudent(sid)
		}
	}
	delete(s.departments, id)
}
