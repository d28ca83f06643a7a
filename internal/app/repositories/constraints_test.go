package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

func TestTranslateWriteError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: ConstraintGWARecordUnique}
	assert.Equal(t, apperrors.ErrDuplicateRecord, translateWriteError(fmt.Errorf("insert: %w", unique), "creating record"))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "students_department_id_fkey"}
	err := translateWriteError(fk, "creating student")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, _ := apperrors.AsCustomError(err)
	assert.Equal(t, "department_id", ce.Field)
	assert.Equal(t, "Invalid department_id - object does not exist.", ce.Message)

	check := &pgconn.PgError{Code: "23514", ConstraintName: "gwa_records_gwa_check"}
	assert.ErrorIs(t, translateWriteError(check, "creating record"), apperrors.ErrValidationFailed)

	other := errors.New("connection reset")
	err = translateWriteError(other, "creating campus")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)

	assert.ErrorIs(t, UniqueViolation("unknown_key"), apperrors.ErrConflict)
}

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, "campus", 7)
	require.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "campus 7 not found.", err.Error())

	assert.NotErrorIs(t, notFound(errors.New("boom"), "campus", 7), apperrors.ErrResourceNotFound)
}

func TestGWARecordWhere(t *testing.T) {
	r := NewGWARecordRepository(nil)
	semester := "1st Semester"
	maxGWA := 1.75

	sql, args, err := r.where(models.GWARecordFilter{Semester: &semester, MaxGWA: &maxGWA}, "doe").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "g.semester = ?")
	assert.Contains(t, sql, "g.gwa <= ?")
	assert.Contains(t, sql, "s.last_name ILIKE ?")
	assert.Equal(t, "1st Semester", args[0])
	assert.Equal(t, 1.75, args[1])
	assert.Equal(t, "%doe%", args[2])

	sql, args, err = r.where(models.GWARecordFilter{}, "").ToSql()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.NotContains(t, sql, "ILIKE")
}
