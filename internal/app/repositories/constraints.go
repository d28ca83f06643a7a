package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/dberrors"
)

// Constraint names shared by the SQL schema and the in-memory store
const (
	ConstraintCampusName        = "campuses_name_key"
	ConstraintCampusCode        = "campuses_code_key"
	ConstraintDepartmentName    = "departments_name_key"
	ConstraintDepartmentCode    = "departments_code_key"
	ConstraintCourseCode        = "courses_code_key"
	ConstraintStudentNumber     = "students_student_number_key"
	ConstraintGWARecordUnique   = "gwa_records_student_semester_year_key"
	ConstraintOfficerUser       = "officers_user_id_key"
	ConstraintUsername          = "users_username_key"
	ConstraintTokenBlacklistJTI = "token_blacklist_pkey"
)

var uniqueViolations = map[string]error{
	ConstraintCampusName:        apperrors.NewConflictError("name", "campus with this name already exists."),
	ConstraintCampusCode:        apperrors.NewConflictError("code", "campus with this code already exists."),
	ConstraintDepartmentName:    apperrors.NewConflictError("name", "department with this name already exists."),
	ConstraintDepartmentCode:    apperrors.NewConflictError("code", "department with this code already exists."),
	ConstraintCourseCode:        apperrors.NewConflictError("code", "course with this code already exists."),
	ConstraintStudentNumber:     apperrors.NewConflictError("student_number", "student with this student number already exists."),
	ConstraintGWARecordUnique:   apperrors.ErrDuplicateRecord,
	ConstraintOfficerUser:       apperrors.NewConflictError("user_id", "officer with this user already exists."),
	ConstraintUsername:          apperrors.ErrDuplicateUsername,
	ConstraintTokenBlacklistJTI: apperrors.ErrTokenRevoked,
}

// foreign key constraint => request field
var foreignKeyFields = map[string]string{
	"departments_campus_id_fkey":   "campus_id",
	"courses_department_id_fkey":   "department_id",
	"students_campus_id_fkey":      "campus_id",
	"students_department_id_fkey":  "department_id",
	"gwa_records_student_id_fkey":  "student_id",
	"gwa_records_encoded_by_fkey":  "encoded_by",
	"officers_user_id_fkey":        "user_id",
	"officers_campus_id_fkey":      "campus_id",
	"token_blacklist_user_id_fkey": "user_id",
}

// UniqueViolation returns the domain error for a violated unique constraint
func UniqueViolation(constraint string) error {
	if err, ok := uniqueViolations[constraint]; ok {
		return err
	}
	return apperrors.NewConflictError("", "A record with these values already exists.")
}

// ForeignKeyViolation returns the validation error for a dangling reference
func ForeignKeyViolation(constraint string) error {
	field := foreignKeyFields[constraint]
	return apperrors.NewValidationError(field, fmt.Sprintf("Invalid %s - object does not exist.", field))
}

// translateWriteError maps PostgreSQL constraint failures onto domain errors
// and leaves anything else wrapped as-is.
func translateWriteError(err error, op string) error {
	if constraint, ok := dberrors.IsUniqueViolation(err); ok {
		return UniqueViolation(constraint)
	}
	if constraint, ok := dberrors.IsForeignKeyViolation(err); ok {
		return ForeignKeyViolation(constraint)
	}
	if constraint, ok := dberrors.IsCheckViolation(err); ok {
		return apperrors.NewValidationError("", fmt.Sprintf("Value violates constraint %s.", constraint))
	}
	return fmt.Errorf("error %s: %w", op, err)
}

// notFound wraps pgx.ErrNoRows as a domain not-found error
func notFound(err error, entity string, id interface{}) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %v not found.", entity, id))
	}
	return fmt.Errorf("error retrieving %s: %w", entity, err)
}
