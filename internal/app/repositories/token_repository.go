package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/dberrors"
	"github.com/yigit/honorsociety/internal/pkg/logger"
)

// PostgresTokenRepository stores revoked refresh-token ids
type PostgresTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Revoke blacklists a refresh token id until expiresAt
func (r *PostgresTokenRepository) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("token_blacklist").
		Columns("jti", "user_id", "expires_at", "revoked_at").
		Values(jti, userID, expiresAt, time.Now()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, ConstraintTokenBlacklistJTI) {
			return apperrors.ErrTokenRevoked
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti is blacklisted
func (r *PostgresTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	sql, args, err := r.sb.Select("1").From("token_blacklist").Where(squirrel.Eq{"jti": jti}).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building is revoked SQL")
		return false, fmt.Errorf("failed to build is revoked query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error checking token blacklist")
		return false, fmt.Errorf("error checking token blacklist: %w", err)
	}
	return true, nil
}

// DeleteExpired removes blacklist rows for tokens that expired before now
func (r *PostgresTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("token_blacklist").Where(squirrel.Lt{"expires_at": now}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup tokens SQL")
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup tokens query")
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
