package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"academy-backend/internal/domains/notification/model"
	"academy-backend/internal/domains/notification/repository"
)

// InboxLimit caps GET /notifications
const InboxLimit = 50

type NotificationService interface {
	Inbox(ctx context.Context, userID uuid.UUID) (*model.InboxPage, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error)
	CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *notificationService) Inbox(ctx context.Context, userID uuid.UUID) (*model.InboxPage, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, InboxLimit)
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead() {
			unread++
		}
	}

	return &model.InboxPage{
		Notifications: notifications,
		Unread:        unread,
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error) {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificationService) CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.repo.DeleteReadBefore(ctx, s.now().Add(-olderThan))
}
