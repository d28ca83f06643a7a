package inmem

import (
	"context"
	"time"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

type tokenRepository struct {
	s *Store
}

func (r *tokenRepository) Revoke(_ context.Context, jti string, userID int64, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.revoked[jti]; ok {
		return apperrors.ErrTokenRevoked
	}
	if _, ok := r.s.users[userID]; !ok {
		return repositories.ForeignKeyViolation("token_blacklist_user_id_fkey")
	}
	r.s.revoked[jti] = models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
		RevokedAt: r.s.now(),
	}
	return nil
}

func (r *tokenRepository) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.revoked[jti]
	return ok, nil
}

func (r *tokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for jti, t := range r.s.revoked {
		if t.ExpiresAt.Before(now) {
			delete(r.s.revoked, jti)
			n++
		}
	}
	return n, nil
}
