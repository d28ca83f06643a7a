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

var courseSortColumns = map[string]string{
	"name":             "co.name",
	"code":             "co.code",
	"department__name": "d.name",
}

var courseColumns = []string{
	"co.id", "co.name", "co.code", "co.department_id",
	"d.name", "d.code", "d.campus_id", "c.name", "c.code",
}

// PostgresCourseRepository handles database operations for courses
type PostgresCourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresCourseRepository) from(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.From("courses co").
		Join("departments d ON d.id = co.department_id").
		Join("campuses c ON c.id = d.campus_id")
}

func (r *PostgresCourseRepository) where(filter models.CourseFilter, search string) squirrel.And {
	cond := squirrel.And{}
	if filter.DepartmentID != nil {
		cond = append(cond, squirrel.Eq{"co.department_id": *filter.DepartmentID})
	}
	if s := helpers.SearchCondition(search, "co.name", "co.code", "d.name"); s != nil {
		cond = append(cond, s)
	}
	return cond
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := models.Course{Department: &models.Department{Campus: &models.Campus{}}}
	d := c.Department
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.DepartmentID,
		&d.Name, &d.Code, &d.CampusID, &d.Campus.Name, &d.Campus.Code); err != nil {
		return nil, err
	}
	d.ID = c.DepartmentID
	d.Campus.ID = d.CampusID
	return &c, nil
}

// List returns one page of courses with their department
func (r *PostgresCourseRepository) List(ctx context.Context, filter models.CourseFilter, opts models.ListOptions) ([]*models.Course, int64, error) {
	where := r.where(filter, opts.Search)

	countSQL, countArgs, err := r.from(r.sb.Select("COUNT(*)")).Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}
	if total == 0 {
		return []*models.Course{}, 0, nil
	}

	query, args, err := r.from(r.sb.Select(courseColumns...)).
		Where(where).
		OrderBy(helpers.OrderByClauses(opts.Ordering, courseSortColumns, "co.id")...).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset())).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0, opts.PageSize)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, 0, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, total, nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := r.from(r.sb.Select(courseColumns...)).Where(squirrel.Eq{"co.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "course", id)
	}
	return c, nil
}

// Create inserts a course and sets its ID
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	query, args, err := r.sb.Insert("courses").
		Columns("name", "code", "department_id").
		Values(course.Name, course.Code, course.DepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&course.ID); err != nil {
		return translateWriteError(err, "creating course")
	}
	return nil
}

// Update overwrites a course's fields
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	query, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("code", course.Code).
		Set("department_id", course.DepartmentID).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, "updating course")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("course %d not found.", course.ID))
	}
	return nil
}

// Delete removes a course
func (r *PostgresCourseRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "courses", "course", id)
}
