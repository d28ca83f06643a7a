package inmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

var campusComparators = map[string]comparator[*models.Campus]{
	"name": func(a, b *models.Campus) int { return strings.Compare(a.Name, b.Name) },
	"code": func(a, b *models.Campus) int { return strings.Compare(a.Code, b.Code) },
}

type campusRepository struct {
	s *Store
}

func (s *Store) campusView(id int64) *models.Campus {
	c, ok := s.campuses[id]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

func (s *Store) checkCampusUnique(c *models.Campus) error {
	for _, other := range s.campuses {
		if other.ID == c.ID {
			continue
		}
		if other.Name == c.Name {
			return repositories.UniqueViolation(repositories.ConstraintCampusName)
		}
		if other.Code == c.Code {
			return repositories.UniqueViolation(repositories.ConstraintCampusCode)
		}
	}
	return nil
}

func (r *campusRepository) List(_ context.Context, _ models.CampusFilter, opts models.ListOptions) ([]*models.Campus, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Campus, 0)
	for id, c := range r.s.campuses {
		if matchesSearch(opts.Search, c.Name, c.Code) {
			out = append(out, r.s.campusView(id))
		}
	}
	sortItems(out, opts.Ordering, campusComparators, func(c *models.Campus) int64 { return c.ID })
	return paginate(out, opts), int64(len(out)), nil
}

func (r *campusRepository) GetByID(_ context.Context, id int64) (*models.Campus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c := r.s.campusView(id); c != nil {
		return c, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("campus %d not found.", id))
}

func (r *campusRepository) Create(_ context.Context, campus *models.Campus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkCampusUnique(campus); err != nil {
		return err
	}
	campus.ID = r.s.nextID("campuses")
	stored := *campus
	r.s.campuses[stored.ID] = &stored
	return nil
}

func (r *campusRepository) Update(_ context.Context, campus *models.Campus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.campuses[campus.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("campus %d not found.", campus.ID))
	}
	if err := r.s.checkCampusUnique(campus); err != nil {
		return err
	}
	stored := *campus
	r.s.campuses[stored.ID] = &stored
	return nil
}

func (r *campusRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.campuses[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("campus %d not found.", id))
	}
	r.s.deleteCampus(id)
	return nil
}

// deleteCampus cascades to departments, students and officers
func (s *Store) deleteCampus(id int64) {
	for did, d := range s.departments {
		if d.CampusID == id {
			s.deleteDepartment(did)
		}
	}
	for sid, st := range s.students {
		if st.CampusID == id {
			s.deleteStudent(sid)
		}
	}
	for oid, o := range s.officers {
		if o.CampusID == id {
			delete(s.officers, oid)
		}
	}
	delete(s.campuses, id)
}
