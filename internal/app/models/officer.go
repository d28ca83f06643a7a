package models

// Officer is an honor-society officer account, one per user, scoped to a campus
type Officer struct {
	ID         int64   `json:"id" db:"id"`
	UserID     int64   `json:"user_id" db:"user_id"`
	Position   string  `json:"position" db:"position"`
	CampusID   int64   `json:"campus_id" db:"campus_id"`
	IsActive   bool    `json:"is_active" db:"is_active"`
	IsVerified bool    `json:"is_verified" db:"is_verified"`
	User       *User   `json:"user,omitempty"`   // Relation, no db tag
	Campus     *Campus `json:"campus,omitempty"` // Relation, no db tag
}

// OfficerFilter narrows officer listings
type OfficerFilter struct {
	CampusID *int64
	IsActive *bool
}
