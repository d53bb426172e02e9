package domain

import "time"

// BookingStatus enumerates service booking states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a client's reservation of a provider service.
type Booking struct {
	ID           string        `json:"id"`
	ClientID     string        `json:"clientId"`
	ProviderID   string        `json:"providerId"`
	ServiceID    string        `json:"serviceId"`
	ServiceTitle string        `json:"serviceTitle,omitempty"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// BookingSummary is the compact booking shape embedded in client listings.
type BookingSummary struct {
	ID        string        `json:"id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64                   `json:"totalUsers"`
	TotalClients      int64                   `json:"totalClients"`
	TotalProviders    int64                   `json:"totalProviders"`
	VerifiedProviders int64                   `json:"verifiedProviders"`
	PendingProviders  int64                   `json:"pendingProviders"`
	RejectedProviders int64                   `json:"rejectedProviders"`
	TotalCategories   int64                   `json:"totalCategories"`
	TotalBookings     int64                   `json:"totalBookings"`
	BookingsByStatus  map[BookingStatus]int64 `json:"bookingsByStatus"`
}
