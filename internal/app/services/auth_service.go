package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	appAuth "github.com/yigit/honorsociety/internal/app/auth"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/auth"
	"github.com/yigit/honorsociety/internal/pkg/validation"
)

// RegistrationMessage is returned after a successful self-registration
const RegistrationMessage = "Registration successful. Your account is pending verification by an administrator."

// AuthService handles authentication and officer self-registration
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, userID int64, refreshToken string) (*dto.MessageResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Profile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
}

type authServiceImpl struct {
	userRepo    repositories.UserRepository
	officerRepo repositories.OfficerRepository
	campusRepo  repositories.CampusRepository
	tokenRepo   repositories.TokenRepository
	gate        *appAuth.OfficerGate
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	officerRepo repositories.OfficerRepository,
	campusRepo repositories.CampusRepository,
	tokenRepo repositories.TokenRepository,
	gate *appAuth.OfficerGate,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		officerRepo: officerRepo,
		campusRepo:  campusRepo,
		tokenRepo:   tokenRepo,
		gate:        gate,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login checks the credentials, then the officer gate, and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Debug().Str("username", req.Username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Error loading user for login")
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	officer, err := s.gate.ResolveOfficer(ctx, user.ID)
	if err != nil {
		s.logger.Info().Err(err).Int64("userID", user.ID).Msg("Login refused by officer gate")
		return nil, err
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate tokens")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return &dto.LoginResponse{
		Access:  accessToken,
		Refresh: refreshToken,
		User:    dto.NewUserResponse(user),
		Member:  dto.NewOfficerResponse(officer),
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Refresh token rejected")
		return nil, apperrors.ErrRefreshTokenInvalid
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("jti", claims.ID).Msg("Error checking token blacklist")
		return nil, err
	}
	if revoked {
		s.logger.Info().Str("jti", claims.ID).Int64("userID", claims.UserID).Msg("Revoked refresh token presented")
		return nil, apperrors.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrRefreshTokenInvalid
		}
		return nil, err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate access token")
		return nil, err
	}
	return &dto.RefreshResponse{Access: accessToken}, nil
}

// Logout blacklists the caller's refresh token until it expires
func (s *authServiceImpl) Logout(ctx context.Context, userID int64, refreshToken string) (*dto.MessageResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrLogoutTokenInvalid
	}
	if claims.UserID != userID {
		s.logger.Warn().Int64("userID", userID).Int64("tokenOwner", claims.UserID).Msg("Logout with another user's token")
		return nil, apperrors.ErrLogoutTokenInvalid
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAtTime()); err != nil {
		if errors.Is(err, apperrors.ErrTokenRevoked) {
			return nil, apperrors.ErrLogoutTokenInvalid
		}
		s.logger.Error().Err(err).Str("jti", claims.ID).Msg("Failed to revoke refresh token")
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("User logged out")
	return &dto.MessageResponse{Message: "Successfully logged out."}, nil
}

func validateRegistration(req *dto.RegisterRequest) error {
	if req.Username == "" || req.Password == "" || req.Position == "" || req.CampusID == 0 {
		return apperrors.ErrMissingFields
	}
	return validation.First(
		validation.NewStringValidation("username", req.Username).
			WithMaxLength(validation.UsernameMaxLength).
			WithPattern(validation.CompiledPatterns.Username).
			Validate(),
		validation.NewStringValidation("password", req.Password).WithMinLength(validation.PasswordMinLength).Validate(),
		validation.NewStringValidation("email", req.Email).WithRequired(false).WithPattern(validation.CompiledPatterns.Email).Validate(),
		validation.NewStringValidation("first_name", req.FirstName).WithRequired(false).WithMaxLength(validation.PersonNameMaxLength).Validate(),
		validation.NewStringValidation("last_name", req.LastName).WithRequired(false).WithMaxLength(validation.PersonNameMaxLength).Validate(),
		validation.NewStringValidation("position", req.Position).WithMaxLength(validation.PositionMaxLength).Validate(),
	)
}

// Register creates a user and an unverified officer record. When the
// officer insert fails the user is deleted again.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Error checking username")
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateUsername
	}

	if _, err := s.campusRepo.GetByID(ctx, req.CampusID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCampus
		}
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, apperrors.ErrRegistrationFailed
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race on the username
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ErrDuplicateUsername
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, apperrors.ErrRegistrationFailed
	}

	officer := &models.Officer{
		UserID:     user.ID,
		Position:   req.Position,
		CampusID:   req.CampusID,
		IsActive:   true,
		IsVerified: false,
	}
	if err := s.officerRepo.Create(ctx, officer); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to create officer, removing user")
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("userID", user.ID).Msg("Failed to remove user after registration failure")
		}
		return nil, apperrors.ErrRegistrationFailed
	}

	created, err := s.officerRepo.GetByID(ctx, officer.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Int64("officerID", officer.ID).Msg("Officer registered, pending verification")
	return &dto.RegisterResponse{
		Message: RegistrationMessage,
		User:    dto.NewUserResponse(user),
		Officer: dto.NewOfficerResponse(created),
	}, nil
}

// Profile returns the authenticated user with their officer record
func (s *authServiceImpl) Profile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrNotAnOfficer
		}
		return nil, err
	}

	officer, err := s.officerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrNotAnOfficer
		}
		return nil, err
	}

	return &dto.ProfileResponse{
		User:   dto.NewUserResponse(user),
		Member: dto.NewOfficerResponse(officer),
	}, nil
}
