package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// ParsePaginationParams extracts page and page_size from the query string.
// Non-numeric or non-positive values are rejected; page_size is capped at MaxPageSize.
func ParsePaginationParams(c *gin.Context) (page, size int, err error) {
	page, size = DefaultPage, DefaultPageSize

	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, apperrors.NewValidationError("page", "page must be a positive integer.")
		}
	}

	if raw := c.Query("page_size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return 0, 0, apperrors.NewValidationError("page_size", "page_size must be a positive integer.")
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
	}

	return page, size, nil
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	// past the end; also keeps (page-1)*size from overflowing
	if page-1 >= (totalItems+size-1)/size {
		return totalItems, totalItems
	}

	start = (page - 1) * size
	end = start + size
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
