package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/shared"
)

type ReadCleaner interface {
	CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

// CleanupReadHandler removes read notifications past their retention
type CleanupReadHandler struct {
	cleaner ReadCleaner
}

func NewCleanupReadHandler(cleaner ReadCleaner) *CleanupReadHandler {
	return &CleanupReadHandler{cleaner: cleaner}
}

func (h *CleanupReadHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupReadNotificationsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.OlderThanDays <= 0 {
		return fmt.Errorf("older_than_days must be positive: %w", asynq.SkipRetry)
	}

	deleted, err := h.cleaner.CleanupRead(ctx, time.Duration(payload.OlderThanDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("cleanup read notifications: %w", err)
	}

	log.Info().
		Int64("deleted", deleted).
		Int("older_than_days", payload.OlderThanDays).
		Msg("Read notifications cleaned up")
	return nil
}
