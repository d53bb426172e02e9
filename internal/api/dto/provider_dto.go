package dto

// VerifyProviderRequest payload for provider verification.
type VerifyProviderRequest struct {
	ProviderID string  `json:"providerId" validate:"required"`
	DocumentID *string `json:"documentId,omitempty"`
}

// RejectProviderRequest payload for provider rejection.
type RejectProviderRequest struct {
	ProviderID string `json:"providerId" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// ToggleStatusRequest payload for account activation toggles.
type ToggleStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
