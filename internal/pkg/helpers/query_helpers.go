package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

// QueryInt64 reads an optional integer query parameter. Absent or empty
// yields nil; anything unparsable is a validation error naming the parameter.
func QueryInt64(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(name, fmt.Sprintf("%s must be an integer.", name))
	}
	return &v, nil
}

// QueryInt is QueryInt64 for int-sized values
func QueryInt(c *gin.Context, name string) (*int, error) {
	v, err := QueryInt64(c, name)
	if err != nil || v == nil {
		return nil, err
	}
	i := int(*v)
	return &i, nil
}

// QueryBool reads an optional boolean query parameter (true/false/1/0)
func QueryBool(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(name, fmt.Sprintf("%s must be a boolean.", name))
	}
	return &v, nil
}

// QueryFloat reads an optional decimal query parameter
func QueryFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(name, fmt.Sprintf("%s must be a number.", name))
	}
	return &v, nil
}

// QueryString reads an optional exact-match string parameter
func QueryString(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

// ParseOrdering turns "a,-b" into sort fields, keeping only whitelisted
// names. An empty result falls back to defaults.
func ParseOrdering(raw string, allowed []string, defaults []models.SortField) []models.SortField {
	var out []models.SortField
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if name == "" || seen[name] || !contains(allowed, name) {
			continue
		}
		seen[name] = true
		out = append(out, models.SortField{Field: name, Desc: desc})
	}

	if len(out) == 0 {
		return append([]models.SortField(nil), defaults...)
	}
	return out
}

// ParseListOptions reads search, ordering and pagination parameters
func ParseListOptions(c *gin.Context, allowed []string, defaults []models.SortField) (models.ListOptions, error) {
	page, size, err := ParsePaginationParams(c)
	if err != nil {
		return models.ListOptions{}, err
	}
	return models.ListOptions{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: ParseOrdering(c.Query("ordering"), allowed, defaults),
		Page:     page,
		PageSize: size,
	}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
