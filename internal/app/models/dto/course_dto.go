package dto

import "github.com/yigit/honorsociety/internal/app/models"

// CourseResponse is the read projection of a course with its department
type CourseResponse struct {
	ID         int64               `json:"id" example:"1"`
	Name       string              `json:"name" example:"Data Structures"`
	Code       string              `json:"code" example:"CS201"`
	Department *DepartmentResponse `json:"department"`
}

// CourseRequest is the write request for create and full update
type CourseRequest struct {
	Name         string `json:"name" binding:"required" example:"Data Structures"`
	Code         string `json:"code" binding:"required" example:"CS201"`
	DepartmentID int64  `json:"department_id" binding:"required" example:"1"`
}

// PatchCourseRequest is the write request for partial update
type PatchCourseRequest struct {
	Name         *string `json:"name,omitempty"`
	Code         *string `json:"code,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
}

// NewCourseResponse builds the read projection
func NewCourseResponse(c *models.Course) *CourseResponse {
	if c == nil {
		return nil
	}
	return &CourseResponse{
		ID:         c.ID,
		Name:       c.Name,
		Code:       c.Code,
		Department: NewDepartmentResponse(c.Department),
	}
}
