package inmem

import (
	"context"
	"fmt"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.users {
		if other.Username == user.Username {
			return repositories.UniqueViolation(repositories.ConstraintUsername)
		}
	}
	user.ID = r.s.nextID("users")
	user.CreatedAt = r.s.now()
	stored := *user
	r.s.users[stored.ID] = &stored
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %d not found.", id))
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found.", username))
}

func (r *userRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d not found.", id))
	}
	u.PasswordHash = passwordHash
	return nil
}

// Delete removes the user with its officer record, encoded GWA records and blacklist rows
func (r *userRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d not found.", id))
	}
	for oid, o := range r.s.officers {
		if o.UserID == id {
			delete(r.s.officers, oid)
		}
	}
	for rid, rec := range r.s.records {
		if rec.EncodedByID == id {
			delete(r.s.records, rid)
		}
	}
	for jti, t := range r.s.revoked {
		if t.UserID == id {
			delete(r.s.revoked, jti)
		}
	}
	delete(r.s.users, id)
	return nil
}
