package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/infrastructure/email"
)

// ============================================
// Send Email Handler
// ============================================

// SendEmailHandler delivers one queued email. One task per recipient keeps
// asynq retries scoped to the address that failed.
type SendEmailHandler struct {
	emailService email.EmailService
}

func NewSendEmailHandler(emailService email.EmailService) *SendEmailHandler {
	return &SendEmailHandler{
		emailService: emailService,
	}
}

func (h *SendEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.EmailRequest
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SendEmail payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Strs("to", payload.To).
		Str("subject", payload.Subject).
		Msg("Sending email")

	if err := h.emailService.SendEmail(ctx, payload); err != nil {
		log.Error().Err(err).Strs("to", payload.To).Msg("Failed to send email")
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().
		Strs("to", payload.To).
		Msg("Email sent successfully")

	return nil
}
