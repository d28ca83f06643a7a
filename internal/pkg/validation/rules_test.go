package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

func TestValidateGWA(t *testing.T) {
	for _, ok := range []float64{1, 1.5, 1.75, 3.00, 99.99} {
		assert.NoError(t, ValidateGWA(ok), "%v", ok)
	}
	for _, bad := range []float64{0, -1.25, 100, 1.234, 2.001} {
		err := ValidateGWA(bad)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed, "%v", bad)
		ce, _ := apperrors.AsCustomError(err)
		assert.Equal(t, "gwa", ce.Field)
	}
}

func TestRoundGWA(t *testing.T) {
	assert.Equal(t, 1.75, RoundGWA(1.7499999))
	assert.Equal(t, 1.33, RoundGWA(4.0/3))
}

func TestStringValidation(t *testing.T) {
	tests := []struct {
		name    string
		v       *StringValidation
		wantErr bool
	}{
		{"required empty", NewStringValidation("name", "  "), true},
		{"optional empty", NewStringValidation("email", "").WithRequired(false), false},
		{"too long", NewStringValidation("code", "ABCDEFGHIJK").WithMaxLength(CodeMaxLength), true},
		{"too short", NewStringValidation("password", "short").WithMinLength(PasswordMinLength), true},
		{"pattern", NewStringValidation("code", "CS 101").WithPattern(CompiledPatterns.Code), true},
		{"ok", NewStringValidation("username", "jane.doe@x").WithPattern(CompiledPatterns.Username), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNumericValidationAndFirst(t *testing.T) {
	low := NewNumericValidation("year_level", 0).WithMin(1).Validate()
	assert.Error(t, low)
	assert.NoError(t, NewNumericValidation("year_level", 4).WithMin(1).WithMax(10).Validate())

	assert.Equal(t, low, First(nil, low, NewNumericValidation("x", 99).WithMax(5).Validate()))
	assert.NoError(t, First(nil, nil))
}
