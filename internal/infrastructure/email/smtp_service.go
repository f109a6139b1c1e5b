package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"academy-backend/internal/config"
	"academy-backend/pkg/logger"
)

// EmailService sends a fully composed message
type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

var ErrNoRecipients = errors.New("email has no recipients")

// NewEmailService picks the provider configured in EMAIL_PROVIDER
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.Provider == "sendgrid" {
		return NewSendGridService(cfg.APIKey, cfg.From, cfg.FromName)
	}
	return NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.From)
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPService targets an unauthenticated relay (MailHog / Mailpit in development)
func NewSMTPService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return ErrNoRecipients
	}

	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s",
		s.smtpFrom, strings.Join(req.To, ", "), req.Subject, contentType, req.Body))

	if err := s.send(s.smtpAddr, nil, s.smtpFrom, req.To, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        req.To,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
