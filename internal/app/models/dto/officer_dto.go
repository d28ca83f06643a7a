package dto

import "github.com/yigit/honorsociety/internal/app/models"

// OfficerResponse is the read projection of an officer
type OfficerResponse struct {
	ID         int64           `json:"id" example:"1"`
	User       *UserResponse   `json:"user"`
	Position   string          `json:"position" example:"President"`
	Campus     *CampusResponse `json:"campus"`
	IsActive   bool            `json:"is_active" example:"true"`
	IsVerified bool            `json:"is_verified" example:"false"`
}

// OfficerRequest is the write request for create and full update.
// is_active and is_verified are not writable through the API.
type OfficerRequest struct {
	UserID   int64  `json:"user_id" binding:"required" example:"1"`
	Position string `json:"position" binding:"required" example:"President"`
	CampusID int64  `json:"campus_id" binding:"required" example:"1"`
}

// PatchOfficerRequest is the write request for partial update
type PatchOfficerRequest struct {
	UserID   *int64  `json:"user_id,omitempty"`
	Position *string `json:"position,omitempty"`
	CampusID *int64  `json:"campus_id,omitempty"`
}

// NewOfficerResponse builds the read projection
func NewOfficerResponse(o *models.Officer) *OfficerResponse {
	if o == nil {
		return nil
	}
	return &OfficerResponse{
		ID:         o.ID,
		User:       NewUserResponse(o.User),
		Position:   o.Position,
		Campus:     NewCampusResponse(o.Campus),
		IsActive:   o.IsActive,
		IsVerified: o.IsVerified,
	}
}
