package models

import "math"

// SortField is one validated ordering term. Field is the public API name.
type SortField struct {
	Field string
	Desc  bool
}

// ListOptions carries the cross-cutting list parameters shared by every
// resource: free-text search, ordering and page-based pagination.
type ListOptions struct {
	Search   string
	Ordering []SortField
	Page     int
	PageSize int
}

// Offset returns the row offset for the 1-based page, saturating at
// math.MaxInt instead of overflowing
func (o ListOptions) Offset() int {
	if o.Page < 1 || o.PageSize < 1 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.PageSize {
		return math.MaxInt
	}
	return (o.Page - 1) * o.PageSize
}

// Ordering whitelists, keyed by API name, and defaults per entity.
var (
	CampusOrderingFields  = []string{"name", "code"}
	CampusDefaultOrdering = []SortField{{Field: "name"}}

	DepartmentOrderingFields  = []string{"name", "code", "campus__name"}
	DepartmentDefaultOrdering = []SortField{{Field: "name"}}

	CourseOrderingFields  = []string{"name", "code", "department__name"}
	CourseDefaultOrdering = []SortField{{Field: "name"}}

	StudentOrderingFields  = []string{"student_number", "first_name", "last_name", "year_level"}
	StudentDefaultOrdering = []SortField{{Field: "last_name"}, {Field: "first_name"}}

	GWARecordOrderingFields  = []string{"academic_year", "semester", "gwa", "created_at"}
	GWARecordDefaultOrdering = []SortField{{Field: "academic_year", Desc: true}, {Field: "semester", Desc: true}}

	OfficerOrderingFields  = []string{"position", "campus__name", "is_active"}
	OfficerDefaultOrdering = []SortField{{Field: "position"}}
)
