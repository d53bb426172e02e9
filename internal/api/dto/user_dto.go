package dto

import "time"

// LoginRequest payload for admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetPasswordRequest payload for the bootstrap password endpoint.
type SetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// CreateAdminRequest payload for the bootstrap admin endpoint.
type CreateAdminRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// ChangePasswordRequest payload for an admin resetting a user's password.
type ChangePasswordRequest struct {
	UserID      string `json:"userId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
