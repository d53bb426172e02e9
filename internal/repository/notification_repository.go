package repository

import (
	"context"

	"github.com/servicelink/admin-service/internal/domain"
)

type notificationRepository struct {
	db DBTX
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(db DBTX) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (receiver_id, type, title, message, is_read)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		n.ReceiverID,
		n.Type,
		n.Title,
		n.Message,
		n.IsRead,
	).Scan(&n.ID, &n.CreatedAt)
	return translate(err)
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID string) ([]domain.Notification, error) {
	const query = `
        SELECT id, receiver_id, type, title, message, is_read, created_at
        FROM notifications WHERE receiver_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, receiverID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.ReceiverID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
