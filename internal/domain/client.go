package domain

import "time"

// Client is the profile attached to a CLIENT account.
type Client struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Address belongs to a client.
type Address struct {
	ID         string `json:"id"`
	ClientID   string `json:"clientId"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	IsDefault  bool   `json:"isDefault"`
}

// ClientRecord joins a client profile with its sanitized account.
type ClientRecord struct {
	Client
	User UserSummary `json:"user"`
}

// ClientOverview is the admin listing shape for a client.
type ClientOverview struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	User           UserSummary      `json:"user"`
	Addresses      []Address        `json:"addresses"`
	BookingCount   int              `json:"bookingCount"`
	RecentBookings []BookingSummary `json:"recentBookings"`
}
