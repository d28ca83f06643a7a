package models

import "time"

// HonorThreshold is the GWA at or below which a record counts as honor
// eligible. Lower GWA means better standing.
const HonorThreshold = 1.75

// GWARecord is one student's general weighted average for a semester
type GWARecord struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"student_id" db:"student_id"`
	Semester     string    `json:"semester" db:"semester"`
	AcademicYear string    `json:"academic_year" db:"academic_year"`
	GWA          float64   `json:"gwa" db:"gwa"`
	EncodedByID  int64     `json:"encoded_by_id" db:"encoded_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Student      *Student  `json:"student,omitempty"`    // Relation, no db tag
	EncodedBy    *User     `json:"encoded_by,omitempty"` // Relation, no db tag
}

// GWARecordFilter narrows GWA record listings. MinGWA and MaxGWA are inclusive.
type GWARecordFilter struct {
	StudentID    *int64
	Semester     *string
	AcademicYear *string
	MinGWA       *float64
	MaxGWA       *float64
}

// GWAStatistics aggregates a filtered record set. HighestGWA is the best
// (numerically lowest) value and LowestGWA the worst (numerically highest).
type GWAStatistics struct {
	TotalRecords  int64    `json:"total_records"`
	AverageGWA    *float64 `json:"average_gwa"`
	HighestGWA    *float64 `json:"highest_gwa"`
	LowestGWA     *float64 `json:"lowest_gwa"`
	HonorEligible int64    `json:"honor_eligible"`
}
