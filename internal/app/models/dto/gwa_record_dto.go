package dto

import (
	"time"

	"github.com/yigit/honorsociety/internal/app/models"
)

// GWARecordResponse is the read projection of a GWA record. EncodedBy is
// the encoder's username.
type GWARecordResponse struct {
	ID           int64            `json:"id" example:"1"`
	Student      *StudentResponse `json:"student"`
	Semester     string           `json:"semester" example:"1st Semester"`
	AcademicYear string           `json:"academic_year" example:"2024-2025"`
	GWA          float64          `json:"gwa" example:"1.5"`
	EncodedBy    string           `json:"encoded_by" example:"officer1"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// GWARecordRequest is the write request for create and full update.
// encoded_by and timestamps are always set by the server.
type GWARecordRequest struct {
	StudentID    int64    `json:"student_id" binding:"required" example:"1"`
	Semester     string   `json:"semester" binding:"required" example:"1st Semester"`
	AcademicYear string   `json:"academic_year" binding:"required" example:"2024-2025"`
	GWA          *float64 `json:"gwa" binding:"required" example:"1.5"`
}

// PatchGWARecordRequest is the write request for partial update
type PatchGWARecordRequest struct {
	StudentID    *int64   `json:"student_id,omitempty"`
	Semester     *string  `json:"semester,omitempty"`
	AcademicYear *string  `json:"academic_year,omitempty"`
	GWA          *float64 `json:"gwa,omitempty"`
}

// GWAStatisticsResponse mirrors models.GWAStatistics. highest_gwa is the
// numerically lowest value.
type GWAStatisticsResponse struct {
	TotalRecords  int64    `json:"total_records" example:"3"`
	AverageGWA    *float64 `json:"average_gwa" example:"1.75"`
	HighestGWA    *float64 `json:"highest_gwa" example:"1.5"`
	LowestGWA     *float64 `json:"lowest_gwa" example:"2"`
	HonorEligible int64    `json:"honor_eligible" example:"2"`
}

// NewGWARecordResponse builds the read projection
func NewGWARecordResponse(r *models.GWARecord) *GWARecordResponse {
	if r == nil {
		return nil
	}
	resp := &GWARecordResponse{
		ID:           r.ID,
		Student:      NewStudentResponse(r.Student),
		Semester:     r.Semester,
		AcademicYear: r.AcademicYear,
		GWA:          r.GWA,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.EncodedBy != nil {
		resp.EncodedBy = r.EncodedBy.Username
	}
	return resp
}

// NewGWAStatisticsResponse converts aggregate statistics
func NewGWAStatisticsResponse(s *models.GWAStatistics) GWAStatisticsResponse {
	return GWAStatisticsResponse{
		TotalRecords:  s.TotalRecords,
		AverageGWA:    s.AverageGWA,
		HighestGWA:    s.HighestGWA,
		LowestGWA:     s.LowestGWA,
		HonorEligible: s.HonorEligible,
	}
}
