package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/domains/category"
	"academy-backend/internal/domains/course/model"
	"academy-backend/internal/domains/course/repository"
	notification "academy-backend/internal/domains/notification/model"
	"academy-backend/internal/infrastructure/queue"
	"academy-backend/internal/infrastructure/storage"
	"academy-backend/internal/shared"
	"academy-backend/internal/shared/authz"
	"academy-backend/pkg/cache"
)

// PhotoDir is the object key prefix of course photos
const PhotoDir = "courses"

// CourseService implements ServiceInterface
type CourseService struct {
	repo       repository.RepositoryInterface
	categories CategoryLookup
	cache      cache.Cache
	listTTL    time.Duration
	storage    storage.ObjectStorage
	images     *storage.ImageProcessor
	publisher  EventPublisher
	enqueuer   queue.Enqueuer
	now        func() time.Time
}

// NewService - Constructor with DI
func NewService(
	repo repository.RepositoryInterface,
	categories CategoryLookup,
	c cache.Cache,
	listTTL time.Duration,
	objectStorage storage.ObjectStorage,
	images *storage.ImageProcessor,
	publisher EventPublisher,
	enqueuer queue.Enqueuer,
) *CourseService {
	if images == nil {
		images = storage.NewImageProcessor(storage.DefaultMaxPhotoSize)
	}
	return &CourseService{
		repo:       repo,
		categories: categories,
		cache:      c,
		listTTL:    listTTL,
		storage:    objectStorage,
		images:     images,
		publisher:  publisher,
		enqueuer:   enqueuer,
		now:        time.Now,
	}
}

var _ ServiceInterface = (*CourseService)(nil)

// ================================================
// READS
// ================================================

// List serves one filtered page through the result cache
func (s *CourseService) List(ctx context.Context, filter model.ListFilter) (*model.CoursePage, error) {
	filter = filter.Normalize()

	page, err := cache.GetOrCompute(ctx, s.cache, filter.CacheKey(), s.listTTL,
		func(ctx context.Context) (*model.CoursePage, error) {
			log.Debug().Str("key", filter.CacheKey()).Msg("Course list cache miss")

			items, total, err := s.repo.List(ctx, filter)
			if err != nil {
				return nil, err
			}
			return model.NewCoursePage(items, filter.Page, total), nil
		})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return page, nil
}

func (s *CourseService) Get(ctx context.Context, id int64) (*model.Course, error) {
	if id <= 0 {
		return nil, model.ErrInvalidCourse
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CourseService) CreateForm(ctx context.Context, actor *authz.Actor) ([]category.Category, error) {
	if err := authz.Authorize(actor, authz.ActionCreate); err != nil {
		return nil, err
	}
	return s.listCategories(ctx)
}

func (s *CourseService) EditForm(ctx context.Context, actor *authz.Actor, id int64) (*model.Course, []category.Category, error) {
	if err := authz.Authorize(actor, authz.ActionUpdate); err != nil {
		return nil, nil, err
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return course, categories, nil
}

func (s *CourseService) PhotoURL(key string) string {
	if s.storage == nil || key == "" {
		return ""
	}
	return s.storage.URL(key)
}

// ================================================
// MUTATIONS
// ================================================

func (s *CourseService) Create(ctx context.Context, actor *authz.Actor, form model.CourseForm, photo *model.PhotoUpload) (*model.Course, error) {
	// STEP 1: AUTHORIZE
	if err := authz.Authorize(actor, authz.ActionCreate); err != nil {
		return nil, err
	}

	// STEP 2: VALIDATE
	input, err := s.parseForm(ctx, form)
	if err != nil {
		return nil, err
	}

	course := &model.Course{}
	input.Apply(course)

	// STEP 3: STORE PHOTO
	photoKey, err := s.storePhoto(ctx, input.Name, photo)
	if err != nil {
		return nil, err
	}
	if photoKey != "" {
		course.Photo = &photoKey
	}

	// STEP 4: PERSIST
	if err := s.repo.Create(ctx, course); err != nil {
		s.discardUpload(ctx, photoKey)
		return nil, fmt.Errorf("create course: %w", err)
	}

	// STEP 5: INVALIDATE LISTINGS
	s.invalidateList(ctx)

	// STEP 6: FAN OUT (does not wait)
	if s.publisher != nil {
		s.publisher.Dispatch(ctx, notification.CourseCreated{
			CourseID:   course.ID,
			Name:       course.Name,
			Price:      course.Price,
			Capacity:   course.Capacity,
			StartDate:  course.StartDate,
			EndDate:    course.EndDate,
			OccurredAt: s.now(),
		})
	}

	// STEP 7: THUMBNAIL
	s.enqueueThumbnail(ctx, course.ID, photoKey)

	log.Info().Int64("course_id", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, actor *authz.Actor, id int64, form model.CourseForm, photo *model.PhotoUpload) (*model.Course, error) {
	// STEP 1: AUTHORIZE
	if err := authz.Authorize(actor, authz.ActionUpdate); err != nil {
		return nil, err
	}

	// STEP 2: LOAD
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// STEP 3: VALIDATE
	input, err := s.parseForm(ctx, form)
	if err != nil {
		return nil, err
	}
	input.Apply(course)

	// STEP 4: STORE PHOTO (optional, the current photo is kept otherwise)
	photoKey, err := s.storePhoto(ctx, input.Name, photo)
	if err != nil {
		return nil, err
	}
	if photoKey != "" {
		course.Photo = &photoKey
	}

	// STEP 5: PERSIST
	previous, err := s.repo.Update(ctx, course)
	if err != nil {
		s.discardUpload(ctx, photoKey)
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update course: %w", err)
	}

	// STEP 6: INVALIDATE LISTINGS
	s.invalidateList(ctx)

	// STEP 7: PHOTO HOUSEKEEPING
	if previous != nil && (course.Photo == nil || *previous != *course.Photo) {
		s.discardPhoto(ctx, course.ID, *previous)
	}
	s.enqueueThumbnail(ctx, course.ID, photoKey)

	log.Info().Int64("course_id", course.ID).Msg("Course updated")
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *authz.Actor, id int64) (*model.Course, error) {
	if err := authz.Authorize(actor, authz.ActionDelete); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, model.ErrInvalidCourse
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete course: %w", err)
	}

	s.invalidateList(ctx)

	if deleted.Photo != nil {
		s.discardPhoto(ctx, deleted.ID, *deleted.Photo)
	}

	log.Info().Int64("course_id", deleted.ID).Msg("Course deleted")
	return deleted, nil
}

// ================================================
// HELPERS
// ================================================

// parseForm validates the form and then checks that the category exists
func (s *CourseService) parseForm(ctx context.Context, form model.CourseForm) (*model.CourseInput, error) {
	input, err := form.Parse()
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		exists, err := s.categories.Exists(ctx, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if !exists {
			return nil, validation.Errors{"category_id": model.ErrCategoryDoesNotExist}
		}
	}

	return input, nil
}

// storePhoto validates and uploads the photo. An empty key means no photo was sent.
func (s *CourseService) storePhoto(ctx context.Context, courseName string, photo *model.PhotoUpload) (string, error) {
	if photo == nil || len(photo.Data) == 0 {
		return "", nil
	}
	if s.storage == nil {
		return "", &model.PhotoUploadError{Reason: "photo storage is not available"}
	}

	format, err := s.images.ValidateImage(photo.Data)
	if err != nil {
		return "", &model.PhotoUploadError{Reason: err.Error(), Err: err}
	}

	key := storage.PhotoKey(PhotoDir, courseName, format)
	if err := s.storage.Put(ctx, key, photo.Data, storage.ContentTypeFor(format)); err != nil {
		return "", &model.PhotoUploadError{Reason: "the photo could not be stored", Err: err}
	}

	return key, nil
}

// discardUpload removes a photo uploaded by a request whose write failed
func (s *CourseService) discardUpload(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to remove orphaned course photo")
	}
}

// discardPhoto schedules removal of a photo that is no longer referenced.
// Without a queue the photo is removed inline.
func (s *CourseService) discardPhoto(ctx context.Context, courseID int64, key string) {
	if s.enqueuer != nil {
		_, err := queue.EnqueueJSON(ctx, s.enqueuer, shared.TypeDeleteCoursePhotoArtifact,
			shared.CoursePhotoPayload{CourseID: courseID, PhotoKey: key},
			asynq.Queue(shared.QueueMedia),
			asynq.MaxRetry(3),
		)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("key", key).Msg("Failed to enqueue photo deletion, deleting inline")
	}

	if s.storage == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	for _, k := range []string{key, storage.ThumbnailKey(key)} {
		if err := s.storage.Delete(detached, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("Failed to delete course photo")
		}
	}
}

func (s *CourseService) enqueueThumbnail(ctx context.Context, courseID int64, key string) {
	if key == "" || s.enqueuer == nil {
		return
	}
	_, err := queue.EnqueueJSON(ctx, s.enqueuer, shared.TypeCoursePhotoThumbnail,
		shared.CoursePhotoPayload{CourseID: courseID, PhotoKey: key},
		asynq.Queue(shared.QueueMedia),
		asynq.MaxRetry(3),
	)
	if err != nil {
		log.Warn().Err(err).Int64("course_id", courseID).Msg("Failed to enqueue thumbnail task")
	}
}

// invalidateList drops every cached listing page. A failure leaves stale
// pages until their TTL runs out, so it is logged rather than returned.
func (s *CourseService) invalidateList(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, model.ListCachePrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate course list cache")
	}
}

func (s *CourseService) listCategories(ctx context.Context) ([]category.Category, error) {
	resp, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return resp.Categories, nil
}
