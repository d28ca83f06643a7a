package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories/inmem"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

func TestOfficerGate(t *testing.T) {
	ctx := context.Background()
	repos := inmem.NewRepositories()

	campus := &models.Campus{Name: "Main Campus", Code: "MAIN"}
	require.NoError(t, repos.CampusRepository.Create(ctx, campus))
	user := &models.User{Username: "officer1", PasswordHash: "x"}
	require.NoError(t, repos.UserRepository.Create(ctx, user))

	gate := NewOfficerGate(repos.OfficerRepository)

	_, err := gate.ResolveOfficer(ctx, user.ID)
	assert.Equal(t, apperrors.ErrNotAnOfficer, err)

	officer := &models.Officer{UserID: user.ID, Position: "President", CampusID: campus.ID}
	require.NoError(t, repos.OfficerRepository.Create(ctx, officer))

	tests := []struct {
		name     string
		active   bool
		verified bool
		want     error
	}{
		// inactive is reported before unverified
		{"inactive and unverified", false, false, apperrors.ErrInactiveOfficer},
		{"inactive", false, true, apperrors.ErrInactiveOfficer},
		{"unverified", true, false, apperrors.ErrUnverifiedOfficer},
		{"approved", true, true, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, repos.OfficerRepository.SetStatus(ctx, officer.ID, tc.active, tc.verified))
			got, err := gate.ResolveOfficer(ctx, user.ID)
			if tc.want != nil {
				assert.Equal(t, tc.want, err)
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, officer.ID, got.ID)
		})
	}
}
