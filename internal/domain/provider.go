package domain

import "time"

// ProviderStatus is the externally visible lifecycle state of a provider. It is
// derived from the verification flag and the account activation flag, never stored.
type ProviderStatus string

const (
	ProviderStatusVerified ProviderStatus = "Verified"
	ProviderStatusPending  ProviderStatus = "Pending Verification"
	ProviderStatusRejected ProviderStatus = "Rejected"
)

// DeriveProviderStatus computes the display status.
func DeriveProviderStatus(isProviderVerified, isActive bool) ProviderStatus {
	switch {
	case isProviderVerified:
		return ProviderStatusVerified
	case isActive:
		return ProviderStatusPending
	default:
		return ProviderStatusRejected
	}
}

// DocumentType classifies provider documents.
type DocumentType string

const (
	DocumentTypeID          DocumentType = "ID"
	DocumentTypeCertificate DocumentType = "CERTIFICATE"
	DocumentTypeLicense     DocumentType = "LICENSE"
	DocumentTypeOther       DocumentType = "OTHER"
)

// Document is a file a provider submitted for review.
type Document struct {
	ID         string       `json:"id"`
	ProviderID string       `json:"providerId"`
	Title      string       `json:"title"`
	Type       DocumentType `json:"type"`
	URL        string       `json:"url,omitempty"`
	IsVerified bool         `json:"isVerified"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// ServiceOffering is a bookable service listed by a provider.
type ServiceOffering struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	IsActive bool   `json:"isActive"`
}

// Skill is a provider skill tag.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProviderProfile is the profile attached to a PROVIDER account.
type ProviderProfile struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	BusinessName       *string   `json:"businessName,omitempty"`
	Bio                *string   `json:"bio,omitempty"`
	IsProviderVerified bool      `json:"isProviderVerified"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Provider is a profile loaded together with its account and documents.
type Provider struct {
	Profile   ProviderProfile
	Account   Account
	Documents []Document
}

// ProviderRecord is the sanitized shape returned by lifecycle and query operations.
type ProviderRecord struct {
	ProviderProfile
	User      UserSummary       `json:"user"`
	Status    ProviderStatus    `json:"status"`
	Documents []Document        `json:"documents,omitempty"`
	Services  []ServiceOffering `json:"services,omitempty"`
	Skills    []Skill           `json:"skills,omitempty"`
}

// Record builds the sanitized view of the provider.
func (p Provider) Record() ProviderRecord {
	return ProviderRecord{
		ProviderProfile: p.Profile,
		User:            p.Account.Summary(),
		Status:          DeriveProviderStatus(p.Profile.IsProviderVerified, p.Account.IsActive),
		Documents:       p.Documents,
	}
}

// Status returns the derived lifecycle state.
func (p Provider) Status() ProviderStatus {
	return DeriveProviderStatus(p.Profile.IsProviderVerified, p.Account.IsActive)
}
