package models

// Campus is a physical campus; it owns departments, students and officers.
type Campus struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}

// CampusFilter has no entity-specific filters; search and ordering live in ListOptions.
type CampusFilter struct{}
