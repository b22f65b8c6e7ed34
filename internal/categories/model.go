package categories

import "time"

// Category is a named, toggleable classification entry.
type Category struct {
	ID        int64     `json:"_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListFilters struct {
	Search  string
	SortBy  string
	SortDir string
}

type AddInput struct {
	Name string `json:"name"`
}

type UpdateInput struct {
	ID       int64   `json:"_id"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type DeleteInput struct {
	ID int64 `json:"_id"`
}
