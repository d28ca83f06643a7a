package dto

import "github.com/yigit/honorsociety/internal/app/models"

// CampusResponse is the read projection of a campus
type CampusResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Main Campus"`
	Code string `json:"code" example:"MAIN"`
}

// CampusRequest is the write request for create and full update
type CampusRequest struct {
	Name string `json:"name" binding:"required" example:"Main Campus"`
	Code string `json:"code" binding:"required" example:"MAIN"`
}

// PatchCampusRequest is the write request for partial update
type PatchCampusRequest struct {
	Name *string `json:"name,omitempty" example:"Main Campus"`
	Code *string `json:"code,omitempty" example:"MAIN"`
}

// NewCampusResponse builds the read projection; nil stays nil
func NewCampusResponse(c *models.Campus) *CampusResponse {
	if c == nil {
		return nil
	}
	return &CampusResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}
