package service

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"academy-backend/internal/domains/notification/model"
	"academy-backend/internal/domains/notification/repository"
	"academy-backend/internal/domains/user"
	"academy-backend/internal/infrastructure/queue"
	"academy-backend/internal/shared"
)

// AdminLister returns every admin account
type AdminLister interface {
	ListAdmins(ctx context.Context) ([]user.User, error)
}

// ================================================
// AUDIT LOG
// ================================================

type AuditLogHandler struct {
	logger zerolog.Logger
}

func NewAuditLogHandler(logger zerolog.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

func (h *AuditLogHandler) Name() string { return "audit_log" }

func (h *AuditLogHandler) Handle(ctx context.Context, event model.CourseCreated) error {
	h.logger.Info().
		Str("event", "course.created").
		Int64("course_id", event.CourseID).
		Str("name", event.Name).
		Str("price", event.Price.StringFixed(2)).
		Int("capacity", event.Capacity).
		Str("start_date", event.StartDate.Format("2006-01-02")).
		Str("end_date", event.EndDate.Format("2006-01-02")).
		Time("occurred_at", event.OccurredAt).
		Msg("course created")
	return nil
}

// ================================================
// ADMIN INBOX
// ================================================

type AdminInboxHandler struct {
	admins AdminLister
	repo   repository.NotificationRepository
}

func NewAdminInboxHandler(admins AdminLister, repo repository.NotificationRepository) *AdminInboxHandler {
	return &AdminInboxHandler{admins: admins, repo: repo}
}

func (h *AdminInboxHandler) Name() string { return "admin_inbox" }

func (h *AdminInboxHandler) Handle(ctx context.Context, event model.CourseCreated) error {
	admins, err := h.admins.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) == 0 {
		return nil
	}

	link := fmt.Sprintf("/courses/%d", event.CourseID)
	notifications := make([]model.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, model.Notification{
			UserID: admin.ID,
			Type:   model.NotificationTypeCourseCreated,
			Title:  "New: " + event.Name,
			Body:   fmt.Sprintf("%s is now available from %s", event.Name, event.StartDate.Format("02/01/2006")),
			Link:   &link,
		})
	}

	return h.repo.CreateBatch(ctx, notifications)
}

// ================================================
// ADMIN EMAIL (queued)
// ================================================

// AdminEmailHandler hands the email work to the worker. asynq retries give
// at-least-once delivery even if this process exits right after enqueueing.
type AdminEmailHandler struct {
	enqueuer queue.Enqueuer
}

// CourseCreatedEmailRetries is the asynq retry budget of the email fan-out task
const CourseCreatedEmailRetries = 5

func NewAdminEmailHandler(enqueuer queue.Enqueuer) *AdminEmailHandler {
	return &AdminEmailHandler{enqueuer: enqueuer}
}

func (h *AdminEmailHandler) Name() string { return "admin_email" }

func (h *AdminEmailHandler) Handle(ctx context.Context, event model.CourseCreated) error {
	payload := shared.CourseCreatedEmailPayload{
		CourseID:   event.CourseID,
		CourseName: event.Name,
		Price:      event.Price.StringFixed(2),
	}

	_, err := queue.EnqueueJSON(ctx, h.enqueuer, shared.TypeCourseCreatedEmail, payload,
		asynq.Queue(shared.QueueNotification),
		asynq.MaxRetry(CourseCreatedEmailRetries),
	)
	return err
}
