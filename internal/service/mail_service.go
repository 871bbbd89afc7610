package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/osa911/portfolio-backend/internal/api/sanitization"
	"github.com/osa911/portfolio-backend/internal/models"

	"github.com/wneessen/go-mail"
)

var contactTemplate = template.Must(template.New("contact").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))

// MailConfig holds the SMTP account and notification addressing
type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	To            string
	SubjectPrefix string
	Timeout       time.Duration
}

// mailSender is the part of *mail.Client the service needs
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// MailService delivers contact form notifications to the site owner
type MailService struct {
	sender mailSender
	config MailConfig
}

// NewMailService creates a mail service. Without credentials the service is
// created anyway and every Send fails with ErrNotConfigured.
func NewMailService(config MailConfig) (*MailService, error) {
	if config.From == "" {
		config.From = config.Username
	}
	if config.To == "" {
		config.To = config.From
	}

	s := &MailService{config: config}
	if !s.Configured() {
		return s, nil
	}

	client, err := mail.NewClient(config.Host,
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.Username),
		mail.WithPassword(config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	s.sender = client

	return s, nil
}

// Configured reports whether SMTP credentials and a recipient are present
func (s *MailService) Configured() bool {
	return s.config.Username != "" && s.config.Password != "" && s.config.To != ""
}

// Send delivers one notification. Failures are returned as-is, there is no retry.
func (s *MailService) Send(ctx context.Context, submission models.ContactSubmission) error {
	if !s.Configured() || s.sender == nil {
		return fmt.Errorf("mail transport: %w", ErrNotConfigured)
	}

	msg, err := s.buildMessage(submission)
	if err != nil {
		return err
	}

	if err := s.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: failed to send contact email: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

func (s *MailService) buildMessage(submission models.ContactSubmission) (*mail.Msg, error) {
	body, err := renderContactHTML(submission)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.config.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(s.config.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	// The submitter's address is also in the body, so a Reply-To the mail
	// library cannot parse is dropped rather than failing the submission
	_ = msg.ReplyTo(submission.Email)

	msg.Subject(s.config.SubjectPrefix + sanitization.SingleLine(submission.Subject))
	msg.SetBodyString(mail.TypeTextHTML, body)

	return msg, nil
}

func renderContactHTML(submission models.ContactSubmission) (string, error) {
	var buf bytes.Buffer
	err := contactTemplate.Execute(&buf, struct {
		Name    string
		Email   string
		Subject string
		Message template.HTML
	}{
		Name:    submission.Name,
		Email:   submission.Email,
		Subject: submission.Subject,
		Message: sanitization.MultilineHTML(submission.Message),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render contact email: %w", err)
	}
	return buf.String(), nil
}
