package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/claritycrm/crm-backend/internal/entity"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, message, is_read, created_at, link_contact_id, link_company_id, link_interaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		n.ID,
		n.Message,
		n.IsRead,
		n.CreatedAt,
		n.LinkContactID,
		n.LinkCompanyID,
		n.LinkInteractionID,
	)

	if err != nil {
		log.Printf("❌ [REPO NOTIFICATION] insert failed: %v", err)
		return err
	}

	return nil
}

func (r *NotificationRepository) FindAll(ctx context.Context) ([]*entity.Notification, error) {
	query := `
		SELECT id, message, is_read, created_at, link_contact_id, link_company_id, link_interaction_id
		FROM notifications
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(
			&n.ID,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
			&n.LinkContactID,
			&n.LinkCompanyID,
			&n.LinkInteractionID,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkRead sets is_read unconditionally, so marking an already-read row
// is the same successful no-op. Only a missing id is an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1
		RETURNING id, message, is_read, created_at, link_contact_id, link_company_id, link_interaction_id
	`

	var n entity.Notification
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&n.ID,
		&n.Message,
		&n.IsRead,
		&n.CreatedAt,
		&n.LinkContactID,
		&n.LinkCompanyID,
		&n.LinkInteractionID,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// CountUnread is recomputed from the rows on every call; there is no
// cached counter anywhere that could drift from them.
func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE NOT is_read`).Scan(&count)
	return count, err
}
