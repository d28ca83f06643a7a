package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAuth "github.com/yigit/honorsociety/internal/app/auth"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/auth"
)

func newAuthService(f *fixture, officers repositories.OfficerRepository) AuthService {
	if officers == nil {
		officers = f.repos.OfficerRepository
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(
		f.repos.UserRepository,
		officers,
		f.repos.CampusRepository,
		f.repos.TokenRepository,
		appAuth.NewOfficerGate(f.repos.OfficerRepository),
		jwtService,
		nopLogger,
	)
}

func registration(f *fixture) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  "officer1",
		Password:  "Password123",
		Email:     "officer1@example.com",
		FirstName: "Jane",
		LastName:  "Cruz",
		Position:  "Secretary",
		CampusID:  f.campus.ID,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newAuthService(f, nil)

	resp, err := svc.Register(ctx, registration(f))
	require.NoError(t, err)
	assert.Equal(t, RegistrationMessage, resp.Message)
	assert.Equal(t, "officer1", resp.User.Username)
	require.NotNil(t, resp.Officer)
	assert.True(t, resp.Officer.IsActive)
	assert.False(t, resp.Officer.IsVerified)
	assert.Equal(t, "Main Campus", resp.Officer.Campus.Name)

	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
		want   error
	}{
		{"duplicate username", func(r *dto.RegisterRequest) {}, apperrors.ErrDuplicateUsername},
		{"missing position", func(r *dto.RegisterRequest) { r.Username, r.Position = "u2", "" }, apperrors.ErrMissingFields},
		{"missing campus", func(r *dto.RegisterRequest) { r.Username, r.CampusID = "u3", 0 }, apperrors.ErrMissingFields},
		{"unknown campus", func(r *dto.RegisterRequest) { r.Username, r.CampusID = "u4", 999 }, apperrors.ErrInvalidCampus},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := registration(f)
			tc.mutate(req)
			_, err := svc.Register(ctx, req)
			assert.Equal(t, tc.want, err)
		})
	}

	t.Run("short password", func(t *testing.T) {
		req := registration(f)
		req.Username, req.Password = "u5", "short"
		_, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
		ce, _ := apperrors.AsCustomError(err)
		assert.Equal(t, "password", ce.Field)
	})
}

type failingOfficerRepo struct {
	repositories.OfficerRepository
}

func (failingOfficerRepo) Create(context.Context, *models.Officer) error {
	return errors.New("insert failed")
}

func TestAuthService_RegisterRemovesUserWhenOfficerFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newAuthService(f, failingOfficerRepo{f.repos.OfficerRepository})

	_, err := svc.Register(ctx, registration(f))
	assert.Equal(t, apperrors.ErrRegistrationFailed, err)

	exists, err := f.repos.UserRepository.UsernameExists(ctx, "officer1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAuthService_LoginGate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newAuthService(f, nil)

	reg, err := svc.Register(ctx, registration(f))
	require.NoError(t, err)
	login := &dto.LoginRequest{Username: "officer1", Password: "Password123"}

	_, err = svc.Login(ctx, login)
	assert.Equal(t, apperrors.ErrUnverifiedOfficer, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "officer1", Password: "wrong-password"})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "Password123"})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "officer1"})
	assert.Equal(t, apperrors.ErrMissingCredentials, err)

	require.NoError(t, f.repos.OfficerRepository.SetStatus(ctx, reg.Officer.ID, false, true))
	_, err = svc.Login(ctx, login)
	assert.Equal(t, apperrors.ErrInactiveOfficer, err)

	require.NoError(t, f.repos.OfficerRepository.SetStatus(ctx, reg.Officer.ID, true, true))
	resp, err := svc.Login(ctx, login)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "Secretary", resp.Member.Position)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "encoder", Password: "x"})
	assert.Error(t, err)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newAuthService(f, nil)

	reg, err := svc.Register(ctx, registration(f))
	require.NoError(t, err)
	require.NoError(t, f.repos.OfficerRepository.SetStatus(ctx, reg.Officer.ID, true, true))

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Username: "officer1", Password: "Password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)

	_, err = svc.Refresh(ctx, tokens.Access)
	assert.Equal(t, apperrors.ErrRefreshTokenInvalid, err, "access token is not a refresh token")

	_, err = svc.Refresh(ctx, "")
	assert.Equal(t, apperrors.ErrMissingToken, err)

	_, err = svc.Logout(ctx, f.encoder.ID, tokens.Refresh)
	assert.Equal(t, apperrors.ErrLogoutTokenInvalid, err, "token belongs to someone else")

	msg, err := svc.Logout(ctx, reg.User.ID, tokens.Refresh)
	require.NoError(t, err)
	assert.Equal(t, "Successfully logged out.", msg.Message)

	_, err = svc.Refresh(ctx, tokens.Refresh)
	assert.Equal(t, apperrors.ErrRefreshTokenInvalid, err)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.Logout(ctx, reg.User.ID, tokens.Refresh)
	assert.Equal(t, apperrors.ErrLogoutTokenInvalid, err)
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := newAuthService(f, nil)

	reg, err := svc.Register(ctx, registration(f))
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "officer1", profile.User.Username)
	assert.Equal(t, reg.Officer.ID, profile.Member.ID)

	_, err = svc.Profile(ctx, f.encoder.ID)
	assert.Equal(t, apperrors.ErrNotAnOfficer, err)
}
