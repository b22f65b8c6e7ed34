package users

import "time"

// SuperAdminRole names the role created by the bootstrap registration.
const SuperAdminRole = "SUPER_ADMIN"

// User represents an administrative account.
type User struct {
	ID           int64     `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Language     string    `json:"language,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Patch carries the optional column updates of a user. Nil fields are left unchanged.
type Patch struct {
	Email        *string
	PasswordHash *string
	PhoneNumber  *string
	FirstName    *string
	LastName     *string
	Language     *string
	IsActive     *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Email == nil && p.PasswordHash == nil && p.PhoneNumber == nil &&
		p.FirstName == nil && p.LastName == nil && p.Language == nil && p.IsActive == nil
}

// AddInput is the payload for creating a user.
type AddInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Language    string  `json:"language"`
	Roles       []int64 `json:"roles"`
}

// UpdateInput is the payload for updating a user.
type UpdateInput struct {
	ID          int64   `json:"_id"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Language    *string `json:"language"`
	IsActive    *bool   `json:"is_active"`
	Roles       []int64 `json:"roles"`
}

// DeleteInput identifies the user to remove.
type DeleteInput struct {
	ID int64 `json:"_id"`
}
