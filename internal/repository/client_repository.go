package repository

import (
	"context"

	"github.com/servicelink/admin-service/internal/domain"
)

const recentBookingsPerClient = 5

type clientRepository struct {
	db DBTX
}

// NewClientRepository instantiates the repository.
func NewClientRepository(db DBTX) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `SELECT id, user_id, created_at FROM clients WHERE id=$1`
	var client domain.Client
	if err := r.db.QueryRow(ctx, query, id).Scan(&client.ID, &client.UserID, &client.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.ClientOverview, error) {
	const query = `
        SELECT c.id, c.user_id,
               u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone, u.profile_picture,
               u.role, u.is_active, u.is_verified, u.created_at, u.updated_at
        FROM clients c
        JOIN users u ON u.id = c.user_id
        ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.ClientOverview
	var ids []string
	for rows.Next() {
		var overview domain.ClientOverview
		var account domain.Account
		if err := rows.Scan(
			&overview.ID,
			&overview.UserID,
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.FirstName,
			&account.LastName,
			&account.Phone,
			&account.ProfilePicture,
			&account.Role,
			&account.IsActive,
			&account.IsVerified,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		overview.User = account.Summary()
		result = append(result, overview)
		ids = append(ids, overview.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return []domain.ClientOverview{}, nil
	}

	addresses, err := r.listAddresses(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookings, err := r.listBookings(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		id := result[i].ID
		result[i].Addresses = addresses[id]
		all := bookings[id]
		result[i].BookingCount = len(all)
		if len(all) > recentBookingsPerClient {
			all = all[:recentBookingsPerClient]
		}
		result[i].RecentBookings = all
	}
	return result, nil
}

func (r *clientRepository) listAddresses(ctx context.Context, clientIDs []string) (map[string][]domain.Address, error) {
	const query = `
        SELECT id, client_id, street, city, state, postal_code, country, is_default
        FROM addresses WHERE client_id = ANY($1)`
	rows, err := r.db.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Address)
	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(
			&addr.ID,
			&addr.ClientID,
			&addr.Street,
			&addr.City,
			&addr.State,
			&addr.PostalCode,
			&addr.Country,
			&addr.IsDefault,
		); err != nil {
			return nil, err
		}
		result[addr.ClientID] = append(result[addr.ClientID], addr)
	}
	return result, rows.Err()
}

func (r *clientRepository) listBookings(ctx context.Context, clientIDs []string) (map[string][]domain.BookingSummary, error) {
	const query = `
        SELECT client_id, id, status, created_at
        FROM service_bookings WHERE client_id = ANY($1)
        ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make(map[string][]domain.BookingSummary)
	for rows.Next() {
		var clientID string
		var booking domain.BookingSummary
		if err := rows.Scan(&clientID, &booking.ID, &booking.Status, &booking.CreatedAt); err != nil {
			return nil, err
		}
		result[clientID] = append(result[clientID], booking)
	}
	return result, rows.Err()
}
