package domain

import "time"

// Category groups marketplace services.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryPatch lists the fields an edit may change. Nil means unchanged.
type CategoryPatch struct {
	Name        *string
	Description *string
	ImageURL    *string
}
