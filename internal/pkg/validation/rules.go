package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

// Field limits mirrored from the database schema
const (
	NameMaxLength          = 100
	CodeMaxLength          = 10
	StudentNumberMaxLength = 20
	PersonNameMaxLength    = 50
	SemesterMaxLength      = 20
	AcademicYearMaxLength  = 10
	PositionMaxLength      = 50
	UsernameMaxLength      = 150
	PasswordMinLength      = 8

	// GWAMax is exclusive: NUMERIC(4,2) tops out at 99.99
	GWAMax = 100.0
)

// Validation rule patterns
var (
	CodePattern     = `^[A-Za-z0-9_-]+$`
	UsernamePattern = `^[\w.@+-]+$`
	EmailPattern    = `^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Code     *regexp.Regexp
	Username *regexp.Regexp
	Email    *regexp.Regexp
}{
	Code:     regexp.MustCompile(CodePattern),
	Username: regexp.MustCompile(UsernamePattern),
	Email:    regexp.MustCompile(EmailPattern),
}

// StringValidation validates one string field
type StringValidation struct {
	Field    string
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a required string validation for field
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate returns a field-naming validation error, or nil
func (v *StringValidation) Validate() error {
	value := strings.TrimSpace(v.Value)
	if value == "" {
		if v.Required {
			return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s is required.", v.Field))
		}
		return nil
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at least %d characters.", v.Field, v.MinLen))
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at most %d characters.", v.Field, v.MaxLen))
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s has an invalid format.", v.Field))
	}
	return nil
}

// NumericValidation validates one integer field
type NumericValidation struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

// NewNumericValidation creates a numeric validation for field
func NewNumericValidation(field string, value int64) *NumericValidation {
	return &NumericValidation{Field: field, Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int64) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int64) *NumericValidation {
	v.Max = max
	return v
}

// Validate returns a field-naming validation error, or nil
func (v *NumericValidation) Validate() error {
	if v.Min != 0 && v.Value < v.Min {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at least %d.", v.Field, v.Min))
	}
	if v.Max != 0 && v.Value > v.Max {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at most %d.", v.Field, v.Max))
	}
	return nil
}

// ValidateGWA checks that gwa is positive, below GWAMax and has at most two
// fractional digits.
func ValidateGWA(gwa float64) error {
	if math.IsNaN(gwa) || math.IsInf(gwa, 0) || gwa <= 0 || gwa >= GWAMax {
		return apperrors.NewValidationError("gwa", "gwa must be greater than 0 and less than 100.")
	}
	scaled := gwa * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		return apperrors.NewValidationError("gwa", "gwa must have at most 2 decimal places.")
	}
	return nil
}

// RoundGWA rounds to the two decimals the column stores
func RoundGWA(v float64) float64 {
	return math.Round(v*100) / 100
}

// First returns the first non-nil error
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
