package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
	"github.com/yigit/honorsociety/internal/pkg/logger"
)

var officerSortColumns = map[string]string{
	"position":     "o.position",
	"campus__name": "c.name",
	"is_active":    "o.is_active",
}

var officerColumns = []string{
	"o.id", "o.user_id", "o.position", "o.campus_id", "o.is_active", "o.is_verified",
	"u.username", "u.email", "u.first_name", "u.last_name", "u.created_at",
	"c.name", "c.code",
}

// PostgresOfficerRepository handles database operations for officers
type PostgresOfficerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOfficerRepository creates a new officer repository
func NewOfficerRepository(db *pgxpool.Pool) *PostgresOfficerRepository {
	return &PostgresOfficerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresOfficerRepository) from(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.From("officers o").
		Join("users u ON u.id = o.user_id").
		Join("campuses c ON c.id = o.campus_id")
}

func (r *PostgresOfficerRepository) where(filter models.OfficerFilter, search string) squirrel.And {
	cond := squirrel.And{}
	if filter.CampusID != nil {
		cond = append(cond, squirrel.Eq{"o.campus_id": *filter.CampusID})
	}
	if filter.IsActive != nil {
		cond = append(cond, squirrel.Eq{"o.is_active": *filter.IsActive})
	}
	if s := helpers.SearchCondition(search, "u.username", "u.first_name", "u.last_name", "o.position", "c.name"); s != nil {
		cond = append(cond, s)
	}
	return cond
}

func scanOfficer(row pgx.Row) (*models.Officer, error) {
	o := models.Officer{User: &models.User{}, Campus: &models.Campus{}}
	err := row.Scan(
		&o.ID, &o.UserID, &o.Position, &o.CampusID, &o.IsActive, &o.IsVerified,
		&o.User.Username, &o.User.Email, &o.User.FirstName, &o.User.LastName, &o.User.CreatedAt,
		&o.Campus.Name, &o.Campus.Code,
	)
	if err != nil {
		return nil, err
	}
	o.User.ID = o.UserID
	o.Campus.ID = o.CampusID
	return &o, nil
}

// List returns one page of officers with user and campus
func (r *PostgresOfficerRepository) List(ctx context.Context, filter models.OfficerFilter, opts models.ListOptions) ([]*models.Officer, int64, error) {
	where := r.where(filter, opts.Search)

	countSQL, countArgs, err := r.from(r.sb.Select("COUNT(*)")).Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count officers SQL")
		return nil, 0, fmt.Errorf("failed to build count officers query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count officers query")
		return nil, 0, fmt.Errorf("failed to count officers: %w", err)
	}
	if total == 0 {
		return []*models.Officer{}, 0, nil
	}

	query, args, err := r.from(r.sb.Select(officerColumns...)).
		Where(where).
		OrderBy(helpers.OrderByClauses(opts.Ordering, officerSortColumns, "o.id")...).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset())).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list officers SQL")
		return nil, 0, fmt.Errorf("failed to build list officers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list officers query")
		return nil, 0, fmt.Errorf("failed to query officers: %w", err)
	}
	defer rows.Close()

	officers := make([]*models.Officer, 0, opts.PageSize)
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning officer row")
			return nil, 0, fmt.Errorf("failed to scan officer row: %w", err)
		}
		officers = append(officers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating officer rows: %w", err)
	}

	return officers, total, nil
}

func (r *PostgresOfficerRepository) getOne(ctx context.Context, cond squirrel.Eq, key interface{}) (*models.Officer, error) {
	query, args, err := r.from(r.sb.Select(officerColumns...)).Where(cond).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get officer SQL")
		return nil, fmt.Errorf("failed to build get officer query: %w", err)
	}

	o, err := scanOfficer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "officer", key)
	}
	return o, nil
}

// GetByID retrieves an officer by ID
func (r *PostgresOfficerRepository) GetByID(ctx context.Context, id int64) (*models.Officer, error) {
	return r.getOne(ctx, squirrel.Eq{"o.id": id}, id)
}

// GetByUserID retrieves the officer record of a user account
func (r *PostgresOfficerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Officer, error) {
	return r.getOne(ctx, squirrel.Eq{"o.user_id": userID}, fmt.Sprintf("for user %d", userID))
}

// Create inserts an officer and sets its ID
func (r *PostgresOfficerRepository) Create(ctx context.Context, officer *models.Officer) error {
	query, args, err := r.sb.Insert("officers").
		Columns("user_id", "position", "campus_id", "is_active", "is_verified").
		Values(officer.UserID, officer.Position, officer.CampusID, officer.IsActive, officer.IsVerified).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create officer SQL")
		return fmt.Errorf("failed to build create officer query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&officer.ID); err != nil {
		return translateWriteError(err, "creating officer")
	}
	return nil
}

// Update overwrites user, position and campus; status flags are left alone
func (r *PostgresOfficerRepository) Update(ctx context.Context, officer *models.Officer) error {
	query, args, err := r.sb.Update("officers").
		Set("user_id", officer.UserID).
		Set("position", officer.Position).
		Set("campus_id", officer.CampusID).
		Where(squirrel.Eq{"id": officer.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update officer SQL")
		return fmt.Errorf("failed to build update officer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, "updating officer")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found.", officer.ID))
	}
	return nil
}

// SetStatus sets is_active and is_verified
func (r *PostgresOfficerRepository) SetStatus(ctx context.Context, id int64, isActive, isVerified bool) error {
	query, args, err := r.sb.Update("officers").
		Set("is_active", isActive).
		Set("is_verified", isVerified).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set officer status SQL")
		return fmt.Errorf("failed to build set officer status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("officerID", id).Msg("Error executing set officer status query")
		return fmt.Errorf("error setting officer status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found.", id))
	}
	return nil
}

// Delete removes an officer record; the user account stays
func (r *PostgresOfficerRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "officers", "officer", id)
}
