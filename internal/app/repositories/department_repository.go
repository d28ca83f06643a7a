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

var departmentSortColumns = map[string]string{
	"name":         "d.name",
	"code":         "d.code",
	"campus__name": "c.name",
}

var departmentColumns = []string{"d.id", "d.name", "d.code", "d.campus_id", "c.name", "c.code"}

// PostgresDepartmentRepository handles database operations for departments
type PostgresDepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *PostgresDepartmentRepository {
	return &PostgresDepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresDepartmentRepository) from(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.From("departments d").Join("campuses c ON c.id = d.campus_id")
}

func (r *PostgresDepartmentRepository) where(filter models.DepartmentFilter, search string) squirrel.And {
	cond := squirrel.And{}
	if filter.CampusID != nil {
		cond = append(cond, squirrel.Eq{"d.campus_id": *filter.CampusID})
	}
	if s := helpers.SearchCondition(search, "d.name", "d.code", "c.name"); s != nil {
		cond = append(cond, s)
	}
	return cond
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	d := models.Department{Campus: &models.Campus{}}
	if err := row.Scan(&d.ID, &d.Name, &d.Code, &d.CampusID, &d.Campus.Name, &d.Campus.Code); err != nil {
		return nil, err
	}
	d.Campus.ID = d.CampusID
	return &d, nil
}

// List returns one page of departments with their campus
func (r *PostgresDepartmentRepository) List(ctx context.Context, filter models.DepartmentFilter, opts models.ListOptions) ([]*models.Department, int64, error) {
	where := r.where(filter, opts.Search)

	countSQL, countArgs, err := r.from(r.sb.Select("COUNT(*)")).Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count departments SQL")
		return nil, 0, fmt.Errorf("failed to build count departments query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count departments query")
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}
	if total == 0 {
		return []*models.Department{}, 0, nil
	}

	query, args, err := r.from(r.sb.Select(departmentColumns...)).
		Where(where).
		OrderBy(helpers.OrderByClauses(opts.Ordering, departmentSortColumns, "d.id")...).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset())).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list departments SQL")
		return nil, 0, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, 0, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := make([]*models.Department, 0, opts.PageSize)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning department row")
			return nil, 0, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating department rows: %w", err)
	}

	return departments, total, nil
}

// GetByID retrieves a department by ID
func (r *PostgresDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query, args, err := r.from(r.sb.Select(departmentColumns...)).Where(squirrel.Eq{"d.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get department SQL")
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	d, err := scanDepartment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "department", id)
	}
	return d, nil
}

// Create inserts a department and sets its ID
func (r *PostgresDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query, args, err := r.sb.Insert("departments").
		Columns("name", "code", "campus_id").
		Values(department.Name, department.Code, department.CampusID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create department SQL")
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&department.ID); err != nil {
		return translateWriteError(err, "creating department")
	}
	return nil
}

// Update overwrites a department's fields
func (r *PostgresDepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	query, args, err := r.sb.Update("departments").
		Set("name", department.Name).
		Set("code", department.Code).
		Set("campus_id", department.CampusID).
		Where(squirrel.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update department SQL")
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, "updating department")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("department %d not found.", department.ID))
	}
	return nil
}

// Delete removes a department together with its courses and students
func (r *PostgresDepartmentRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "departments", "department", id)
}
