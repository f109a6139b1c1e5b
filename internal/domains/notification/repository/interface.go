package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"academy-backend/internal/domains/notification/model"
)

type NotificationRepository interface {
	// CreateBatch inserts every notification in one round trip
	CreateBatch(ctx context.Context, notifications []model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error)
	// MarkRead sets read_at for a notification owned by userID
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error)
	// DeleteReadBefore removes notifications read before cutoff
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
