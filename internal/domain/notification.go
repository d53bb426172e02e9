package domain

import "time"

// NotificationType enumerates notification categories.
type NotificationType string

const (
	NotificationTypeGeneral NotificationType = "GENERAL"
	NotificationTypeBooking NotificationType = "BOOKING"
	NotificationTypePayment NotificationType = "PAYMENT"
	NotificationTypeSystem  NotificationType = "SYSTEM"
)

// Notification is an immutable in-app message for a user.
type Notification struct {
	ID         string           `json:"id"`
	ReceiverID string           `json:"receiverId"`
	Type       NotificationType `json:"type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	IsRead     bool             `json:"isRead"`
	CreatedAt  time.Time        `json:"createdAt"`
}
