package inmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

var officerComparators = map[string]comparator[*models.Officer]{
	"position":     func(a, b *models.Officer) int { return strings.Compare(a.Position, b.Position) },
	"campus__name": func(a, b *models.Officer) int { return strings.Compare(a.Campus.Name, b.Campus.Name) },
	"is_active":    func(a, b *models.Officer) int { return compareBool(a.IsActive, b.IsActive) },
}

type officerRepository struct {
	s *Store
}

func (s *Store) officerView(o *models.Officer) *models.Officer {
	cp := *o
	if u, ok := s.users[o.UserID]; ok {
		user := *u
		cp.User = &user
	}
	cp.Campus = s.campusView(o.CampusID)
	return &cp
}

func (s *Store) checkOfficer(o *models.Officer) error {
	if _, ok := s.users[o.UserID]; !ok {
		return repositories.ForeignKeyViolation("officers_user_id_fkey")
	}
	if _, ok := s.campuses[o.CampusID]; !ok {
		return repositories.ForeignKeyViolation("officers_campus_id_fkey")
	}
	for _, other := range s.officers {
		if other.ID != o.ID && other.UserID == o.UserID {
			return repositories.UniqueViolation(repositories.ConstraintOfficerUser)
		}
	}
	return nil
}

func (r *officerRepository) List(_ context.Context, filter models.OfficerFilter, opts models.ListOptions) ([]*models.Officer, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Officer, 0)
	for _, o := range r.s.officers {
		if filter.CampusID != nil && o.CampusID != *filter.CampusID {
			continue
		}
		if filter.IsActive != nil && o.IsActive != *filter.IsActive {
			continue
		}
		view := r.s.officerView(o)
		if matchesSearch(opts.Search, view.User.Username, view.User.FirstName, view.User.LastName, view.Position, view.Campus.Name) {
			out = append(out, view)
		}
	}
	sortItems(out, opts.Ordering, officerComparators, func(o *models.Officer) int64 { return o.ID })
	return paginate(out, opts), int64(len(out)), nil
}

func (r *officerRepository) GetByID(_ context.Context, id int64) (*models.Officer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if o, ok := r.s.officers[id]; ok {
		return r.s.officerView(o), nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found.", id))
}

func (r *officerRepository) GetByUserID(_ context.Context, userID int64) (*models.Officer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.officers {
		if o.UserID == userID {
			return r.s.officerView(o), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("officer for user %d not found.", userID))
}

func (r *officerRepository) Create(_ context.Context, officer *models.Officer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkOfficer(officer); err != nil {
		return err
	}
	officer.ID = r.s.nextID("officers")
	stored := *officer
	stored.User, stored.Campus = nil, nil
	r.s.officers[stored.ID] = &stored
	return nil
}

func (r *officerRepository) Update(_ context.Context, officer *models.Officer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.officers[officer.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found.", officer.ID))
	}
	if err := r.s.checkOfficer(officer); err != nil {
		return err
	}
	existing.UserID = officer.UserID
	existing.Position = officer.Position
	existing.CampusID = officer.CampusID
	return nil
}

func (r *officerRepository) SetStatus(_ context.Context, id int64, isActive, isVerified bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.officers[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found.", id))
	}
	o.IsActive, o.IsVerified = isActive, isVerified
	return nil
}

func (r *officerRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.officers[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found.", id))
	}
	delete(r.s.officers, id)
	return nil
}
