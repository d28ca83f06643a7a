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

var studentSortColumns = map[string]string{
	"student_number": "s.student_number",
	"first_name":     "s.first_name",
	"last_name":      "s.last_name",
	"year_level":     "s.year_level",
}

// studentColumns must stay in step with studentScanTargets
var studentColumns = []string{
	"s.id", "s.student_number", "s.first_name", "s.last_name", "s.campus_id", "s.department_id", "s.year_level",
	"c.name", "c.code",
	"d.name", "d.code", "d.campus_id", "dc.name", "dc.code",
}

// joinStudentRelations adds the student's campus and department (with the
// department's own campus) to a query that already has "s" in scope.
func joinStudentRelations(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.Join("campuses c ON c.id = s.campus_id").
		Join("departments d ON d.id = s.department_id").
		Join("campuses dc ON dc.id = d.campus_id")
}

func newStudentWithRelations() *models.Student {
	return &models.Student{
		Campus:     &models.Campus{},
		Department: &models.Department{Campus: &models.Campus{}},
	}
}

func studentScanTargets(s *models.Student) []interface{} {
	return []interface{}{
		&s.ID, &s.StudentNumber, &s.FirstName, &s.LastName, &s.CampusID, &s.DepartmentID, &s.YearLevel,
		&s.Campus.Name, &s.Campus.Code,
		&s.Department.Name, &s.Department.Code, &s.Department.CampusID, &s.Department.Campus.Name, &s.Department.Campus.Code,
	}
}

// linkStudentRelations copies foreign keys into the nested records after a scan
func linkStudentRelations(s *models.Student) {
	s.Campus.ID = s.CampusID
	s.Department.ID = s.DepartmentID
	s.Department.Campus.ID = s.Department.CampusID
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := newStudentWithRelations()
	if err := row.Scan(studentScanTargets(s)...); err != nil {
		return nil, err
	}
	linkStudentRelations(s)
	return s, nil
}

// PostgresStudentRepository handles database operations for students
type PostgresStudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresStudentRepository) from(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return joinStudentRelations(b.From("students s"))
}

func (r *PostgresStudentRepository) where(filter models.StudentFilter, search string) squirrel.And {
	cond := squirrel.And{}
	if filter.CampusID != nil {
		cond = append(cond, squirrel.Eq{"s.campus_id": *filter.CampusID})
	}
	if filter.DepartmentID != nil {
		cond = append(cond, squirrel.Eq{"s.department_id": *filter.DepartmentID})
	}
	if filter.YearLevel != nil {
		cond = append(cond, squirrel.Eq{"s.year_level": *filter.YearLevel})
	}
	if s := helpers.SearchCondition(search, "s.student_number", "s.first_name", "s.last_name", "c.name", "d.name"); s != nil {
		cond = append(cond, s)
	}
	return cond
}

// listQueries builds the count and page statements for List
func (r *PostgresStudentRepository) listQueries(filter models.StudentFilter, opts models.ListOptions) (count, page squirrel.SelectBuilder) {
	where := r.where(filter, opts.Search)
	count = r.from(r.sb.Select("COUNT(*)")).Where(where)
	page = r.from(r.sb.Select(studentColumns...)).
		Where(where).
		OrderBy(helpers.OrderByClauses(opts.Ordering, studentSortColumns, "s.id")...).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset()))
	return count, page
}

// List returns one page of students with campus and department
func (r *PostgresStudentRepository) List(ctx context.Context, filter models.StudentFilter, opts models.ListOptions) ([]*models.Student, int64, error) {
	countQuery, pageQuery := r.listQueries(filter, opts)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}
	if total == 0 {
		return []*models.Student{}, 0, nil
	}

	query, args, err := pageQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0, opts.PageSize)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, 0, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

// GetByID retrieves a student by ID
func (r *PostgresStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.from(r.sb.Select(studentColumns...)).Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "student", id)
	}
	return s, nil
}

// Create inserts a student and sets its ID
func (r *PostgresStudentRepository) Create(ctx context.Context, student *models.Student) error {
	query, args, err := r.sb.Insert("students").
		Columns("student_number", "first_name", "last_name", "campus_id", "department_id", "year_level").
		Values(student.StudentNumber, student.FirstName, student.LastName, student.CampusID, student.DepartmentID, student.YearLevel).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&student.ID); err != nil {
		return translateWriteError(err, "creating student")
	}
	return nil
}

// Update overwrites a student's fields
func (r *PostgresStudentRepository) Update(ctx context.Context, student *models.Student) error {
	query, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"student_number": student.StudentNumber,
			"first_name":     student.FirstName,
			"last_name":      student.LastName,
			"campus_id":      student.CampusID,
			"department_id":  student.DepartmentID,
			"year_level":     student.YearLevel,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, "updating student")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("student %d not found.", student.ID))
	}
	return nil
}

// Delete removes a student and its GWA records
func (r *PostgresStudentRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "students", "student", id)
}
