package helpers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

func newContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParseOrdering(t *testing.T) {
	allowed := []string{"gwa", "semester", "academic_year"}
	defaults := []models.SortField{{Field: "academic_year", Desc: true}}

	tests := []struct {
		raw  string
		want []models.SortField
	}{
		{"", defaults},
		{"gwa", []models.SortField{{Field: "gwa"}}},
		{"-gwa,semester", []models.SortField{{Field: "gwa", Desc: true}, {Field: "semester"}}},
		{"password,-gwa,gwa", []models.SortField{{Field: "gwa", Desc: true}}},
		{"unknown", defaults},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseOrdering(tc.raw, allowed, defaults), tc.raw)
	}
}

func TestParseListOptions(t *testing.T) {
	opts, err := ParseListOptions(newContext("search=+john+&ordering=-gwa&page=2&page_size=500"), []string{"gwa"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "john", opts.Search)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, MaxPageSize, opts.PageSize)
	assert.Equal(t, MaxPageSize, opts.Offset())

	opts, err = ParseListOptions(newContext(""), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.PageSize)

	for _, q := range []string{"page=0", "page=abc", "page_size=-1"} {
		_, err := ParseListOptions(newContext(q), nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, q)
	}
}

func TestQueryParams(t *testing.T) {
	c := newContext("campus=3&min_gwa=1.75&is_active=true&semester=1st+Semester&bad=x")

	campus, err := QueryInt64(c, "campus")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *campus)

	gwa, err := QueryFloat(c, "min_gwa")
	require.NoError(t, err)
	assert.Equal(t, 1.75, *gwa)

	active, err := QueryBool(c, "is_active")
	require.NoError(t, err)
	assert.True(t, *active)

	assert.Equal(t, "1st Semester", *QueryString(c, "semester"))
	assert.Nil(t, QueryString(c, "missing"))

	missing, err := QueryInt(c, "year_level")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryInt64(c, "bad")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, _ := apperrors.AsCustomError(err)
	assert.Equal(t, "bad", ce.Field)
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 10, 15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(5, 10, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(math.MaxInt, 10, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(1, 10, 0)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestListOptionsOffsetSaturates(t *testing.T) {
	assert.Equal(t, 20, models.ListOptions{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, math.MaxInt, models.ListOptions{Page: math.MaxInt, PageSize: 10}.Offset())
	assert.Zero(t, models.ListOptions{Page: 0, PageSize: 10}.Offset())
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration("5m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}
