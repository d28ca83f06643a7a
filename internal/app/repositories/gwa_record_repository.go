package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
	"github.com/yigit/honorsociety/internal/pkg/logger"
)

var gwaRecordSortColumns = map[string]string{
	"academic_year": "g.academic_year",
	"semester":      "g.semester",
	"gwa":           "g.gwa",
	"created_at":    "g.created_at",
}

var gwaRecordColumns = append([]string{
	"g.id", "g.student_id", "g.semester", "g.academic_year", "g.gwa",
	"g.encoded_by", "g.created_at", "g.updated_at", "u.username",
}, studentColumns...)

// PostgresGWARecordRepository handles database operations for GWA records
type PostgresGWARecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGWARecordRepository creates a new GWA record repository
func NewGWARecordRepository(db *pgxpool.Pool) *PostgresGWARecordRepository {
	return &PostgresGWARecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresGWARecordRepository) from(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return joinStudentRelations(b.From("gwa_records g").
		Join("students s ON s.id = g.student_id")).
		Join("users u ON u.id = g.encoded_by")
}

func (r *PostgresGWARecordRepository) where(filter models.GWARecordFilter, search string) squirrel.And {
	cond := squirrel.And{}
	if filter.StudentID != nil {
		cond = append(cond, squirrel.Eq{"g.student_id": *filter.StudentID})
	}
	if filter.Semester != nil {
		cond = append(cond, squirrel.Eq{"g.semester": *filter.Semester})
	}
	if filter.AcademicYear != nil {
		cond = append(cond, squirrel.Eq{"g.academic_year": *filter.AcademicYear})
	}
	if filter.MinGWA != nil {
		cond = append(cond, squirrel.GtOrEq{"g.gwa": *filter.MinGWA})
	}
	if filter.MaxGWA != nil {
		cond = append(cond, squirrel.LtOrEq{"g.gwa": *filter.MaxGWA})
	}
	if s := helpers.SearchCondition(search, "s.student_number", "s.first_name", "s.last_name", "g.semester", "g.academic_year"); s != nil {
		cond = append(cond, s)
	}
	return cond
}

func newGWARecordWithRelations() *models.GWARecord {
	return &models.GWARecord{
		Student:   newStudentWithRelations(),
		EncodedBy: &models.User{},
	}
}

// gwaRecordScanTargets pairs with gwaRecordColumns
func gwaRecordScanTargets(rec *models.GWARecord) []interface{} {
	return append([]interface{}{
		&rec.ID, &rec.StudentID, &rec.Semester, &rec.AcademicYear, &rec.GWA,
		&rec.EncodedByID, &rec.CreatedAt, &rec.UpdatedAt, &rec.EncodedBy.Username,
	}, studentScanTargets(rec.Student)...)
}

func scanGWARecord(row pgx.Row) (*models.GWARecord, error) {
	rec := newGWARecordWithRelations()
	if err := row.Scan(gwaRecordScanTargets(rec)...); err != nil {
		return nil, err
	}
	linkStudentRelations(rec.Student)
	rec.EncodedBy.ID = rec.EncodedByID
	return rec, nil
}

func (r *PostgresGWARecordRepository) query(ctx context.Context, b squirrel.SelectBuilder) ([]*models.GWARecord, error) {
	query, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list GWA records SQL")
		return nil, fmt.Errorf("failed to build list GWA records query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list GWA records query")
		return nil, fmt.Errorf("failed to query GWA records: %w", err)
	}
	defer rows.Close()

	records := []*models.GWARecord{}
	for rows.Next() {
		rec, err := scanGWARecord(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning GWA record row")
			return nil, fmt.Errorf("failed to scan GWA record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating GWA record rows: %w", err)
	}
	return records, nil
}

// listQueries builds the count and page statements for List
func (r *PostgresGWARecordRepository) listQueries(filter models.GWARecordFilter, opts models.ListOptions) (count, page squirrel.SelectBuilder) {
	where := r.where(filter, opts.Search)
	count = r.from(r.sb.Select("COUNT(*)")).Where(where)
	page = r.from(r.sb.Select(gwaRecordColumns...)).
		Where(where).
		OrderBy(helpers.OrderByClauses(opts.Ordering, gwaRecordSortColumns, "g.id")...).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset()))
	return count, page
}

// List returns one page of GWA records
func (r *PostgresGWARecordRepository) List(ctx context.Context, filter models.GWARecordFilter, opts models.ListOptions) ([]*models.GWARecord, int64, error) {
	countQuery, pageQuery := r.listQueries(filter, opts)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count GWA records SQL")
		return nil, 0, fmt.Errorf("failed to build count GWA records query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count GWA records query")
		return nil, 0, fmt.Errorf("failed to count GWA records: %w", err)
	}
	if total == 0 {
		return []*models.GWARecord{}, 0, nil
	}

	records, err := r.query(ctx, pageQuery)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListAll returns every record matching filter, unpaginated
func (r *PostgresGWARecordRepository) ListAll(ctx context.Context, filter models.GWARecordFilter, ordering []models.SortField) ([]*models.GWARecord, error) {
	return r.query(ctx, r.from(r.sb.Select(gwaRecordColumns...)).
		Where(r.where(filter, "")).
		OrderBy(helpers.OrderByClauses(ordering, gwaRecordSortColumns, "g.id")...))
}

// GetByID retrieves a GWA record by ID
func (r *PostgresGWARecordRepository) GetByID(ctx context.Context, id int64) (*models.GWARecord, error) {
	query, args, err := r.from(r.sb.Select(gwaRecordColumns...)).Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get GWA record SQL")
		return nil, fmt.Errorf("failed to build get GWA record query: %w", err)
	}

	rec, err := scanGWARecord(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "GWA record", id)
	}
	return rec, nil
}

// Create inserts a record; created_at and updated_at come from the database
func (r *PostgresGWARecordRepository) Create(ctx context.Context, record *models.GWARecord) error {
	query, args, err := r.sb.Insert("gwa_records").
		Columns("student_id", "semester", "academic_year", "gwa", "encoded_by").
		Values(record.StudentID, record.Semester, record.AcademicYear, record.GWA, record.EncodedByID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create GWA record SQL")
		return fmt.Errorf("failed to build create GWA record query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return translateWriteError(err, "creating GWA record")
	}
	return nil
}

// Update overwrites the record and refreshes updated_at; created_at is untouched
func (r *PostgresGWARecordRepository) Update(ctx context.Context, record *models.GWARecord) error {
	query, args, err := r.sb.Update("gwa_records").
		Set("student_id", record.StudentID).
		Set("semester", record.Semester).
		Set("academic_year", record.AcademicYear).
		Set("gwa", record.GWA).
		Set("encoded_by", record.EncodedByID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": record.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update GWA record SQL")
		return fmt.Errorf("failed to build update GWA record query: %w", err)
	}

	var updatedAt time.Time
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("GWA record %d not found.", record.ID))
		}
		return translateWriteError(err, "updating GWA record")
	}
	record.UpdatedAt = updatedAt
	return nil
}

// Delete removes a GWA record
func (r *PostgresGWARecordRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "gwa_records", "GWA record", id)
}

// statisticsQuery selects count, average, best (MIN), worst (MAX) and the
// honor count, in that order. The threshold placeholder precedes the filter's.
func (r *PostgresGWARecordRepository) statisticsQuery(filter models.GWARecordFilter, honorThreshold float64) squirrel.SelectBuilder {
	return r.sb.Select(
		"COUNT(g.id)",
		"ROUND(AVG(g.gwa), 2)::float8",
		"MIN(g.gwa)::float8",
		"MAX(g.gwa)::float8",
	).
		Column(squirrel.Expr("COUNT(g.id) FILTER (WHERE g.gwa <= ?)", honorThreshold)).
		From("gwa_records g").
		Join("students s ON s.id = g.student_id").
		Where(r.where(filter, ""))
}

// Statistics aggregates the filtered record set in one query
func (r *PostgresGWARecordRepository) Statistics(ctx context.Context, filter models.GWARecordFilter, honorThreshold float64) (*models.GWAStatistics, error) {
	query, args, err := r.statisticsQuery(filter, honorThreshold).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building GWA statistics SQL")
		return nil, fmt.Errorf("failed to build GWA statistics query: %w", err)
	}

	var stats models.GWAStatistics
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&stats.TotalRecords, &stats.AverageGWA, &stats.HighestGWA, &stats.LowestGWA, &stats.HonorEligible,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing GWA statistics query")
		return nil, fmt.Errorf("failed to compute GWA statistics: %w", err)
	}
	return &stats, nil
}
