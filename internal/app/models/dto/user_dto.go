package dto

import "github.com/yigit/honorsociety/internal/app/models"

// UserResponse is the public profile of a user account
type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"officer1"`
	Email     string `json:"email" example:"officer1@example.com"`
	FirstName string `json:"first_name" example:"Jane"`
	LastName  string `json:"last_name" example:"Cruz"`
}

// NewUserResponse builds the public profile
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
