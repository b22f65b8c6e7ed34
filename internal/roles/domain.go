package roles

import "time"

// Role represents a named permission grouping.
type Role struct {
	ID          int64     `json:"_id"`
	Name        string    `json:"role_name"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   *int64    `json:"created_by"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch carries optional role column updates.
type Patch struct {
	Name     *string
	IsActive *bool
}

// AddInput is the payload for creating a role.
type AddInput struct {
	Name        string   `json:"role_name"`
	Permissions []string `json:"permissions"`
}

// UpdateInput is the payload for updating a role.
type UpdateInput struct {
	ID          int64    `json:"_id"`
	Name        *string  `json:"role_name"`
	IsActive    *bool    `json:"is_active"`
	Permissions []string `json:"permissions"`
}

// DeleteInput identifies the role to remove.
type DeleteInput struct {
	ID int64 `json:"_id"`
}
