package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID            int64       `json:"id" db:"id"`
	StudentNumber string      `json:"student_number" db:"student_number"`
	FirstName     string      `json:"first_name" db:"first_name"`
	LastName      string      `json:"last_name" db:"last_name"`
	CampusID      int64       `json:"campus_id" db:"campus_id"`
	DepartmentID  int64       `json:"department_id" db:"department_id"`
	YearLevel     int         `json:"year_level" db:"year_level"`
	Campus        *Campus     `json:"campus,omitempty"`     // Relation, no db tag
	Department    *Department `json:"department,omitempty"` // Relation, no db tag
}

// StudentFilter narrows student listings
type StudentFilter struct {
	CampusID     *int64
	DepartmentID *int64
	YearLevel    *int
}
