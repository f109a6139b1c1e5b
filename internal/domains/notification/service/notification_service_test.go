package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/domains/notification/model"
	"academy-backend/internal/domains/notification/repository"
)

func TestInboxAndMarkRead(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	require.NoError(t, repo.CreateBatch(ctx, []model.Notification{
		{UserID: owner, Type: model.NotificationTypeSystem, Title: "a"},
		{UserID: owner, Type: model.NotificationTypeSystem, Title: "b"},
		{UserID: other, Type: model.NotificationTypeSystem, Title: "c"},
	}))

	page, err := svc.Inbox(ctx, owner)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 2)
	assert.Equal(t, 2, page.Unread)

	target := page.Notifications[0].ID

	_, err = svc.MarkRead(ctx, target, other)
	assert.ErrorIs(t, err, model.ErrNotificationNotFound)

	n, err := svc.MarkRead(ctx, target, owner)
	require.NoError(t, err)
	assert.True(t, n.IsRead())

	page, err = svc.Inbox(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Unread)
}

func TestCleanupReadRemovesOnlyOldReadEntries(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewNotificationService(repo).(*notificationService)
	ctx := context.Background()

	owner := uuid.New()
	require.NoError(t, repo.CreateBatch(ctx, []model.Notification{
		{UserID: owner, Title: "read"},
		{UserID: owner, Title: "unread"},
	}))

	page, err := svc.Inbox(ctx, owner)
	require.NoError(t, err)
	for _, n := range page.Notifications {
		if n.Title == "read" {
			_, err := svc.MarkRead(ctx, n.ID, owner)
			require.NoError(t, err)
		}
	}

	// nothing is old enough yet
	deleted, err := svc.CleanupRead(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	deleted, err = svc.CleanupRead(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining := repo.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, "unread", remaining[0].Title)
}
