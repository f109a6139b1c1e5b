package email

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridService struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridService(apiKey, from, fromName string) EmailService {
	return &sendGridService{apiKey: apiKey, from: from, fromName: fromName}
}

// SendEmail sends one SendGrid message per recipient so addresses are not disclosed to each other
func (s *sendGridService) SendEmail(ctx context.Context, req EmailRequest) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if len(req.To) == 0 {
		return ErrNoRecipients
	}

	client := sendgrid.NewSendClient(s.apiKey)
	fromEmail := mail.NewEmail(s.fromName, s.from)

	plain, html := req.Body, fmt.Sprintf("<pre>%s</pre>", req.Body)
	if req.IsHTML {
		plain = ""
		html = req.Body
	}

	for _, to := range req.To {
		message := mail.NewSingleEmail(fromEmail, req.Subject, mail.NewEmail("", to), plain, html)

		response, err := client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("sendgrid send error: %w", err)
		}
		if response.StatusCode >= 400 {
			log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
			return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
		}

		log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s", response.StatusCode, to, req.Subject)
	}

	return nil
}
