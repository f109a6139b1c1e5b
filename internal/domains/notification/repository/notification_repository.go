package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"academy-backend/internal/domains/notification/model"
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, type, title, body, link, read_at, created_at`

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(
			`INSERT INTO notifications (user_id, type, title, body, link) VALUES ($1, $2, $3, $4, $5)`,
			n.UserID, n.Type, n.Title, n.Body, n.Link,
		)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	notifications, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Notification])
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE notifications
		SET read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND user_id = $2
		RETURNING `+notificationColumns, id, userID)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	n, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.Notification])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE read_at IS NOT NULL AND read_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
