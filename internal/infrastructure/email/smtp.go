package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/minerepair/repairhub/internal/application/notification"
	"github.com/minerepair/repairhub/internal/shared/services/markdown"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPEmailService is the email notification channel. Bodies are Markdown,
// rendered to sanitized HTML with a plain text alternative.
type SMTPEmailService struct {
	config   SMTPConfig
	dialer   sender
	renderer markdown.MarkdownService
}

func NewSMTPEmailService(config SMTPConfig, renderer markdown.MarkdownService) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config:   config,
		dialer:   dialer,
		renderer: renderer,
	}
}

func (s *SMTPEmailService) Name() string { return "email" }

// Deliver sends msg to target.Email. gomail has no context support, so ctx
// is only checked before dialing.
func (s *SMTPEmailService) Deliver(ctx context.Context, target notification.Target, msg notification.Message) error {
	if strings.TrimSpace(target.Email) == "" {
		return notification.ErrNoAddress
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	htmlBody, err := s.renderer.ToHTMLSanitized(msg.Body)
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}
	plainBody := strings.ReplaceAll(msg.Body, "**", "")

	return s.sendEmail(target.Email, target.Name, msg.Subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, toName, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
