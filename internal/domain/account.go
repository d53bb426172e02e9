package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// Account is the identity record shared by clients, providers and admins.
type Account struct {
	ID             string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          *string
	ProfilePicture *string
	Role           Role
	IsActive       bool
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserSummary is the outward view of an Account. It has no credential field,
// so anything built from it cannot leak the password hash.
type UserSummary struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          *string   `json:"phone,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"isActive"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Summary selects the public fields of the account.
func (a Account) Summary() UserSummary {
	return UserSummary{
		ID:             a.ID,
		Email:          a.Email,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Phone:          a.Phone,
		ProfilePicture: a.ProfilePicture,
		Role:           a.Role,
		IsActive:       a.IsActive,
		IsVerified:     a.IsVerified,
		CreatedAt:      a.CreatedAt,
	}
}

// Caller is the already-authenticated actor invoking a state-changing operation.
type Caller struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (c Caller) IsAdmin() bool {
	return c.ID != "" && c.Role == RoleAdmin
}
