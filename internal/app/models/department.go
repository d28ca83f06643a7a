package models

// Department belongs to a campus
type Department struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Code     string  `json:"code" db:"code"`
	CampusID int64   `json:"campus_id" db:"campus_id"`
	Campus   *Campus `json:"campus,omitempty"` // Relation, no db tag
}

// DepartmentFilter narrows department listings
type DepartmentFilter struct {
	CampusID *int64
}
