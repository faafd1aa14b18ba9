package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"casa_portal_go/config"
	"casa_portal_go/models"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Notifier delivers best-effort notifications
type Notifier interface {
	Notify(email *Email)
}

// Mailer sends email through Resend. In test mode emails are only logged.
type Mailer struct {
	cfg    *config.Config
	logger *zap.Logger
	send   func(params *resend.SendEmailRequest) (string, error)
}

// NewMailer creates a mailer for the configured Resend account
func NewMailer(cfg *config.Config, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Mailer{cfg: cfg, logger: logger}
	m.send = func(params *resend.SendEmailRequest) (string, error) {
		client := resend.NewClient(cfg.ResendAPIKey)
		sent, err := client.Emails.Send(params)
		if err != nil {
			return "", err
		}
		return sent.Id, nil
	}
	return m
}

// Send delivers an email synchronously
func (m *Mailer) Send(email *Email) error {
	if m.cfg.EmailTestMode {
		m.logger.Info("email logged (test mode, not sent)",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
			zap.String("text", truncate(email.TextBody, 500)),
		)
		return nil
	}

	if m.cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.cfg.EmailFromName, m.cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	id, err := m.send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	m.logger.Info("email sent", zap.String("id", id), zap.Strings("to", email.To))
	return nil
}

// Notify sends in a goroutine and only logs failures
func (m *Mailer) Notify(email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}
	go func() {
		if err := m.Send(emailCopy); err != nil {
			m.logger.Warn("failed to send notification email", zap.Error(err))
		}
	}()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

var feedbackEmailTemplate = template.Must(template.New("feedback").Parse(`<h2>New portal feedback</h2>
<p><strong>Category:</strong> {{.Item.Category}}</p>
<p><strong>Subject:</strong> {{.Item.Subject}}</p>
{{if .Item.CaseNumber}}<p><strong>Case:</strong> {{.Item.CaseNumber}}</p>{{end}}
<p><strong>From:</strong> {{.SubmittedBy}}</p>
<div>{{.Item.Message}}</div>`))

// BuildFeedbackNotificationEmail creates the support notification for a feedback item
func BuildFeedbackNotificationEmail(to string, item models.FeedbackItem, submittedBy string) *Email {
	var buf bytes.Buffer
	data := struct {
		Item        models.FeedbackItem
		SubmittedBy string
	}{item, submittedBy}
	htmlBody := ""
	if err := feedbackEmailTemplate.Execute(&buf, data); err == nil {
		htmlBody = buf.String()
	}

	var text strings.Builder
	fmt.Fprintf(&text, "New portal feedback\n\nCategory: %s\nSubject: %s\n", item.Category, item.Subject)
	if item.CaseNumber != "" {
		fmt.Fprintf(&text, "Case: %s\n", item.CaseNumber)
	}
	fmt.Fprintf(&text, "From: %s\n\n%s\n", submittedBy, item.Message)

	return &Email{
		To:       []string{to},
		Subject:  "[CASA Portal] Feedback: " + item.Subject.String(),
		HTMLBody: htmlBody,
		TextBody: text.String(),
	}
}
