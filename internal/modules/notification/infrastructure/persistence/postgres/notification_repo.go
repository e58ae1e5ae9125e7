package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/notification/domain"
)

type PgNotificationRepository struct {
	db *sqlx.DB
}

func NewPgNotificationRepository(db *sqlx.DB) *PgNotificationRepository {
	return &PgNotificationRepository{db: db}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
        INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
        VALUES (:id, :user_id, :title, :message, :type, :is_read, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, n)
	return err
}

func (r *PgNotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	query := `
        SELECT * FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAsRead scopes by user id so one user cannot touch another's rows.
func (r *PgNotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *PgNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1`, userID)
	return err
}

func (r *PgNotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	return count, err
}
