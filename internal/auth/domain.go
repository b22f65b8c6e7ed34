package auth

import "time"

// User represents an authenticated user account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Language     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the part of a user returned with a session token.
type PublicUser struct {
	ID        int64  `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Session is the result of a successful login.
type Session struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
