package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/logger"
)

// OfficerGate decides whether an authenticated user may act as an officer
type OfficerGate struct {
	officerRepo repositories.OfficerRepository
}

// NewOfficerGate creates a new OfficerGate
func NewOfficerGate(officerRepo repositories.OfficerRepository) *OfficerGate {
	return &OfficerGate{officerRepo: officerRepo}
}

// ResolveOfficer returns the officer record for userID when it exists, is
// active and is verified, checked in that order.
func (g *OfficerGate) ResolveOfficer(ctx context.Context, userID int64) (*models.Officer, error) {
	officer, err := g.officerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrNotAnOfficer
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting officer by user ID")
		return nil, fmt.Errorf("failed to resolve officer: %w", err)
	}
	if officer == nil {
		return nil, apperrors.ErrNotAnOfficer
	}

	if !officer.IsActive {
		return nil, apperrors.ErrInactiveOfficer
	}
	if !officer.IsVerified {
		return nil, apperrors.ErrUnverifiedOfficer
	}

	return officer, nil
}
