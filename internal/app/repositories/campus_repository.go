package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
	"github.com/yigit/honorsociety/internal/pkg/logger"
)

var campusSortColumns = map[string]string{
	"name": "c.name",
	"code": "c.code",
}

// PostgresCampusRepository handles database operations for campuses
type PostgresCampusRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCampusRepository creates a new campus repository
func NewCampusRepository(db *pgxpool.Pool) *PostgresCampusRepository {
	return &PostgresCampusRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresCampusRepository) where(_ models.CampusFilter, search string) squirrel.And {
	cond := squirrel.And{}
	if s := helpers.SearchCondition(search, "c.name", "c.code"); s != nil {
		cond = append(cond, s)
	}
	return cond
}

// List returns one page of campuses and the total match count
func (r *PostgresCampusRepository) List(ctx context.Context, filter models.CampusFilter, opts models.ListOptions) ([]*models.Campus, int64, error) {
	where := r.where(filter, opts.Search)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("campuses c").Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count campuses SQL")
		return nil, 0, fmt.Errorf("failed to build count campuses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count campuses query")
		return nil, 0, fmt.Errorf("failed to count campuses: %w", err)
	}
	if total == 0 {
		return []*models.Campus{}, 0, nil
	}

	query, args, err := r.sb.Select("c.id", "c.name", "c.code").
		From("campuses c").
		Where(where).
		OrderBy(helpers.OrderByClauses(opts.Ordering, campusSortColumns, "c.id")...).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset())).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list campuses SQL")
		return nil, 0, fmt.Errorf("failed to build list campuses query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list campuses query")
		return nil, 0, fmt.Errorf("failed to query campuses: %w", err)
	}
	defer rows.Close()

	campuses := make([]*models.Campus, 0, opts.PageSize)
	for rows.Next() {
		var c models.Campus
		if err := rows.Scan(&c.ID, &c.Name, &c.Code); err != nil {
			logger.Error().Err(err).Msg("Error scanning campus row")
			return nil, 0, fmt.Errorf("failed to scan campus row: %w", err)
		}
		campuses = append(campuses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating campus rows: %w", err)
	}

	return campuses, total, nil
}

// GetByID retrieves a campus by ID
func (r *PostgresCampusRepository) GetByID(ctx context.Context, id int64) (*models.Campus, error) {
	query, args, err := r.sb.Select("c.id", "c.name", "c.code").
		From("campuses c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get campus SQL")
		return nil, fmt.Errorf("failed to build get campus query: %w", err)
	}

	var c models.Campus
	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Code); err != nil {
		return nil, notFound(err, "campus", id)
	}
	return &c, nil
}

// Create inserts a campus and sets its ID
func (r *PostgresCampusRepository) Create(ctx context.Context, campus *models.Campus) error {
	query, args, err := r.sb.Insert("campuses").
		Columns("name", "code").
		Values(campus.Name, campus.Code).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create campus SQL")
		return fmt.Errorf("failed to build create campus query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&campus.ID); err != nil {
		return translateWriteError(err, "creating campus")
	}
	return nil
}

// Update overwrites a campus's fields
func (r *PostgresCampusRepository) Update(ctx context.Context, campus *models.Campus) error {
	query, args, err := r.sb.Update("campuses").
		Set("name", campus.Name).
		Set("code", campus.Code).
		Where(squirrel.Eq{"id": campus.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update campus SQL")
		return fmt.Errorf("failed to build update campus query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, "updating campus")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("campus %d not found.", campus.ID))
	}
	return nil
}

// Delete removes a campus. Departments, courses, students, GWA records and
// officers go with it through ON DELETE CASCADE in the same statement.
func (r *PostgresCampusRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "campuses", "campus", id)
}

// deleteByID runs a single DELETE so cascades apply atomically
func deleteByID(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table, entity string, id int64) error {
	query, args, err := sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building delete SQL")
		return fmt.Errorf("failed to build delete %s query: %w", entity, err)
	}

	cmdTag, err := db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Int64("id", id).Msg("Error executing delete query")
		return fmt.Errorf("error deleting %s: %w", entity, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %d not found.", entity, id))
	}
	return nil
}
