package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/domains/user"
	"academy-backend/internal/infrastructure/email"
	"academy-backend/internal/infrastructure/queue"
	"academy-backend/internal/shared"
)

const CourseCreatedEmailSubject = "New Course - Academy"

// AdminLister returns every admin account
type AdminLister interface {
	ListAdmins(ctx context.Context) ([]user.User, error)
}

// CourseCreatedEmailHandler turns one course_created event into one
// email:send task per admin.
type CourseCreatedEmailHandler struct {
	admins   AdminLister
	enqueuer queue.Enqueuer
}

func NewCourseCreatedEmailHandler(admins AdminLister, enqueuer queue.Enqueuer) *CourseCreatedEmailHandler {
	return &CourseCreatedEmailHandler{
		admins:   admins,
		enqueuer: enqueuer,
	}
}

func (h *CourseCreatedEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CourseCreatedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CourseCreatedEmail payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	admins, err := h.admins.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	log.Info().
		Int64("course_id", payload.CourseID).
		Int("admins", len(admins)).
		Msg("Fanning out course created email")

	for _, admin := range admins {
		req := email.EmailRequest{
			To:      []string{admin.Email},
			Subject: CourseCreatedEmailSubject,
			Body:    CourseCreatedEmailBody(admin.Name, payload.CourseName, payload.Price),
		}
		if _, err := queue.EnqueueJSON(ctx, h.enqueuer, shared.TypeSendEmail, req,
			asynq.Queue(shared.QueueEmail),
			asynq.MaxRetry(3),
		); err != nil {
			return err
		}
	}

	return nil
}

// CourseCreatedEmailBody renders the admin notification text
func CourseCreatedEmailBody(adminName, courseName, price string) string {
	return fmt.Sprintf("Hello %s, new: %s (%s€)", adminName, courseName, price)
}
