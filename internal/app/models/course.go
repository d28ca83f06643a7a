package models

// Course belongs to a department
type Course struct {
	ID           int64       `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Code         string      `json:"code" db:"code"`
	DepartmentID int64       `json:"department_id" db:"department_id"`
	Department   *Department `json:"department,omitempty"` // Relation, no db tag
}

// CourseFilter narrows course listings
type CourseFilter struct {
	DepartmentID *int64
}
