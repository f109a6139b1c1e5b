package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/infrastructure/storage"
	"academy-backend/internal/shared"
)

// PhotoThumbnailHandler writes the thumbnail variant of an uploaded course photo
type PhotoThumbnailHandler struct {
	storage storage.ObjectStorage
	images  *storage.ImageProcessor
}

func NewPhotoThumbnailHandler(objectStorage storage.ObjectStorage, images *storage.ImageProcessor) *PhotoThumbnailHandler {
	return &PhotoThumbnailHandler{
		storage: objectStorage,
		images:  images,
	}
}

func (h *PhotoThumbnailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CoursePhotoPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal PhotoThumbnail payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Int64("course_id", payload.CourseID).
		Str("key", payload.PhotoKey).
		Msg("Generating course photo thumbnail")

	original, err := h.storage.Get(ctx, payload.PhotoKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			// photo was replaced or deleted before the worker got here
			log.Warn().Str("key", payload.PhotoKey).Msg("Course photo gone, skipping thumbnail")
			return nil
		}
		return fmt.Errorf("download photo: %w", err)
	}

	thumb, err := h.images.Thumbnail(original)
	if err != nil {
		return fmt.Errorf("resize photo: %v: %w", err, asynq.SkipRetry)
	}

	thumbKey := storage.ThumbnailKey(payload.PhotoKey)
	if err := h.storage.Put(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	log.Info().
		Int64("course_id", payload.CourseID).
		Str("key", thumbKey).
		Msg("Course photo thumbnail stored")
	return nil
}
