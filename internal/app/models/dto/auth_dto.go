package dto

// LoginRequest represents the login payload. Presence is checked by the
// service so the error message matches the documented one.
type LoginRequest struct {
	Username string `json:"username" example:"officer1"`
	Password string `json:"password" example:"Password123"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Access  string           `json:"access" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Refresh string           `json:"refresh" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *UserResponse    `json:"user"`
	Member  *OfficerResponse `json:"member"`
}

// RefreshTokenRequest carries a refresh token for refresh and logout
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshResponse carries the newly issued access token
type RefreshResponse struct {
	Access string `json:"access" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RegisterRequest represents the officer self-registration payload
type RegisterRequest struct {
	Username  string `json:"username" example:"officer1"`
	Password  string `json:"password" example:"Password123"`
	Email     string `json:"email,omitempty" example:"officer1@example.com"`
	FirstName string `json:"first_name,omitempty" example:"Jane"`
	LastName  string `json:"last_name,omitempty" example:"Cruz"`
	Position  string `json:"position" example:"Secretary"`
	CampusID  int64  `json:"campus_id" example:"1"`
}

// RegisterResponse is returned after registration; no tokens are issued
type RegisterResponse struct {
	Message string           `json:"message" example:"Registration successful. Your account is pending verification by an administrator."`
	User    *UserResponse    `json:"user"`
	Officer *OfficerResponse `json:"officer"`
}

// ProfileResponse is the authenticated officer's profile
type ProfileResponse struct {
	User   *UserResponse    `json:"user"`
	Member *OfficerResponse `json:"member"`
}
