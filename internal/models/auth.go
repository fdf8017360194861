package models

// Auth contains authentication response
type Auth struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"-"`
}
