package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/infrastructure/storage"
	"academy-backend/internal/shared"
)

// DeletePhotoHandler removes a course photo that is no longer referenced, with its thumbnail
type DeletePhotoHandler struct {
	storage storage.ObjectStorage
}

func NewDeletePhotoHandler(objectStorage storage.ObjectStorage) *DeletePhotoHandler {
	return &DeletePhotoHandler{storage: objectStorage}
}

func (h *DeletePhotoHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CoursePhotoPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeletePhoto payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.PhotoKey == "" {
		return fmt.Errorf("empty photo key: %w", asynq.SkipRetry)
	}

	for _, key := range []string{payload.PhotoKey, storage.ThumbnailKey(payload.PhotoKey)} {
		if err := h.storage.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to delete course photo")
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	log.Info().
		Int64("course_id", payload.CourseID).
		Str("key", payload.PhotoKey).
		Msg("Course photo deleted")
	return nil
}
