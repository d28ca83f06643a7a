package dto

import "github.com/yigit/honorsociety/internal/app/models"

// StudentResponse is the read projection of a student
type StudentResponse struct {
	ID            int64               `json:"id" example:"1"`
	StudentNumber string              `json:"student_number" example:"2024-001"`
	FirstName     string              `json:"first_name" example:"John"`
	LastName      string              `json:"last_name" example:"Doe"`
	YearLevel     int                 `json:"year_level" example:"1"`
	Campus        *CampusResponse     `json:"campus"`
	Department    *DepartmentResponse `json:"department"`
}

// StudentRequest is the write request for create and full update
type StudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required" example:"2024-001"`
	FirstName     string `json:"first_name" binding:"required" example:"John"`
	LastName      string `json:"last_name" binding:"required" example:"Doe"`
	CampusID      int64  `json:"campus_id" binding:"required" example:"1"`
	DepartmentID  int64  `json:"department_id" binding:"required" example:"1"`
	YearLevel     int    `json:"year_level" binding:"required" example:"1"`
}

// PatchStudentRequest is the write request for partial update
type PatchStudentRequest struct {
	StudentNumber *string `json:"student_number,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	CampusID      *int64  `json:"campus_id,omitempty"`
	DepartmentID  *int64  `json:"department_id,omitempty"`
	YearLevel     *int    `json:"year_level,omitempty"`
}

// NewStudentResponse builds the read projection
func NewStudentResponse(s *models.Student) *StudentResponse {
	if s == nil {
		return nil
	}
	return &StudentResponse{
		ID:            s.ID,
		StudentNumber: s.StudentNumber,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		YearLevel:     s.YearLevel,
		Campus:        NewCampusResponse(s.Campus),
		Department:    NewDepartmentResponse(s.Department),
	}
}
