package dto

import "math"

// MessageResponse is a response carrying only a human-readable message
type MessageResponse struct {
	Message string `json:"message" example:"Successfully logged out."`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"postgres"`
}

// PaginationInfo holds page metadata for list responses
type PaginationInfo struct {
	Count      int64 `json:"count" example:"42"`
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"page_size" example:"10"`
	TotalPages int   `json:"total_pages" example:"5"`
}

// NewPaginationInfo computes the page metadata for a total row count.
// A page past the end is reported as requested; its results are empty.
func NewPaginationInfo(count int64, page, pageSize int) PaginationInfo {
	totalPages := 0
	if count > 0 && pageSize > 0 {
		totalPages = int(math.Ceil(float64(count) / float64(pageSize)))
	}
	return PaginationInfo{
		Count:      count,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ListResponse is the paginated envelope returned by every list endpoint
type ListResponse[T any] struct {
	PaginationInfo
	Results []T `json:"results"`
}

// NewListResponse wraps a page of results with its pagination metadata
func NewListResponse[T any](info PaginationInfo, results []T) ListResponse[T] {
	if results == nil {
		results = []T{}
	}
	return ListResponse[T]{PaginationInfo: info, Results: results}
}

// MapSlice converts a slice of models into response projections
func MapSlice[M any, R any](items []M, fn func(M) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
