package events

import (
	"time"

	"github.com/servicelink/admin-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProviderVerified     EventType = "provider.verified"
	EventProviderRejected     EventType = "provider.rejected"
	EventAccountStatusChanged EventType = "account.status_changed"
	EventPasswordChanged      EventType = "account.password_changed"
)

// AllEventTypes lists every lifecycle event, for subscribers that want them all.
var AllEventTypes = []EventType{
	EventProviderVerified,
	EventProviderRejected,
	EventAccountStatusChanged,
	EventPasswordChanged,
}

// Actor identifies who triggered the event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// EmailRequest asks the email notifier to send the provider verification mail.
type EmailRequest struct {
	Address   string `json:"address"`
	FirstName string `json:"first_name"`
}

// Event is emitted after a lifecycle transition commits. Notification and
// Email describe the side effects the transition asks for. Email stays in
// process: it is never serialized to the stream or the webhook.
type Event struct {
	ID           string               `json:"id"`
	Type         EventType            `json:"type"`
	AccountID    string               `json:"account_id"`
	Actor        Actor                `json:"actor"`
	Timestamp    time.Time            `json:"timestamp"`
	Notification *domain.Notification `json:"notification,omitempty"`
	Email        *EmailRequest        `json:"-"`
	Payload      interface{}          `json:"payload"`
}

// ProviderVerifiedPayload payload.
type ProviderVerifiedPayload struct {
	ProviderID        string  `json:"provider_id"`
	DocumentID        *string `json:"document_id,omitempty"`
	DocumentsVerified int64   `json:"documents_verified"`
}

// ProviderRejectedPayload payload.
type ProviderRejectedPayload struct {
	ProviderID string `json:"provider_id"`
	Reason     string `json:"reason"`
}

// AccountStatusChangedPayload payload.
type AccountStatusChangedPayload struct {
	ProfileID string      `json:"profile_id"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	ChangedBy string `json:"changed_by"`
}
