package repository

import (
	"context"

	"github.com/servicelink/admin-service/internal/domain"
)

type bookingRepository struct {
	db DBTX
}

// NewBookingRepository returns a read-only booking repository.
func NewBookingRepository(db DBTX) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Recent(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT b.id, b.client_id, s.provider_id, b.service_id, s.title, b.status, b.created_at
        FROM service_bookings b
        JOIN services s ON s.id = b.service_id
        ORDER BY b.created_at DESC
        LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.ClientID,
			&b.ProviderID,
			&b.ServiceID,
			&b.ServiceTitle,
			&b.Status,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *bookingRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	const countsQuery = `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM clients),
            (SELECT COUNT(*) FROM service_providers),
            (SELECT COUNT(*) FROM service_providers WHERE is_provider_verified),
            (SELECT COUNT(*) FROM service_providers sp JOIN users u ON u.id = sp.user_id
                WHERE NOT sp.is_provider_verified AND u.is_active),
            (SELECT COUNT(*) FROM service_providers sp JOIN users u ON u.id = sp.user_id
                WHERE NOT sp.is_provider_verified AND NOT u.is_active),
            (SELECT COUNT(*) FROM categories),
            (SELECT COUNT(*) FROM service_bookings)`

	stats := &domain.DashboardStats{BookingsByStatus: map[domain.BookingStatus]int64{}}
	if err := r.db.QueryRow(ctx, countsQuery).Scan(
		&stats.TotalUsers,
		&stats.TotalClients,
		&stats.TotalProviders,
		&stats.VerifiedProviders,
		&stats.PendingProviders,
		&stats.RejectedProviders,
		&stats.TotalCategories,
		&stats.TotalBookings,
	); err != nil {
		return nil, translate(err)
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM service_bookings GROUP BY status`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.BookingsByStatus[status] = count
	}
	return stats, rows.Err()
}
