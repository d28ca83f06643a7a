package dto

import "github.com/yigit/honorsociety/internal/app/models"

// DepartmentResponse is the read projection of a department with its campus
type DepartmentResponse struct {
	ID     int64           `json:"id" example:"1"`
	Name   string          `json:"name" example:"Computer Science"`
	Code   string          `json:"code" example:"CS"`
	Campus *CampusResponse `json:"campus"`
}

// DepartmentRequest is the write request for create and full update
type DepartmentRequest struct {
	Name     string `json:"name" binding:"required" example:"Computer Science"`
	Code     string `json:"code" binding:"required" example:"CS"`
	CampusID int64  `json:"campus_id" binding:"required" example:"1"`
}

// PatchDepartmentRequest is the write request for partial update
type PatchDepartmentRequest struct {
	Name     *string `json:"name,omitempty"`
	Code     *string `json:"code,omitempty"`
	CampusID *int64  `json:"campus_id,omitempty"`
}

// NewDepartmentResponse builds the read projection
func NewDepartmentResponse(d *models.Department) *DepartmentResponse {
	if d == nil {
		return nil
	}
	return &DepartmentResponse{
		ID:     d.ID,
		Name:   d.Name,
		Code:   d.Code,
		Campus: NewCampusResponse(d.Campus),
	}
}
