package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"casa_portal_go/config"
	"casa_portal_go/models"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	emails []*Email
}

func (r *recordingNotifier) Notify(email *Email) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, email)
}

func (r *recordingNotifier) sent() []*Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Email{}, r.emails...)
}

func TestMailer_Send(t *testing.T) {
	email := &Email{To: []string{"support@casa.test"}, Subject: "Hi", TextBody: "Hello"}

	t.Run("Test mode only logs", func(t *testing.T) {
		m := NewMailer(&config.Config{EmailTestMode: true}, nil)
		m.send = func(*resend.SendEmailRequest) (string, error) {
			t.Fatal("send must not be called in test mode")
			return "", nil
		}
		assert.NoError(t, m.Send(email))
	})

	t.Run("Missing API key", func(t *testing.T) {
		m := NewMailer(&config.Config{}, nil)
		assert.EqualError(t, m.Send(email), "RESEND_API_KEY not configured")
	})

	t.Run("Empty body", func(t *testing.T) {
		m := NewMailer(&config.Config{ResendAPIKey: "re_test"}, nil)
		assert.Error(t, m.Send(&Email{To: []string{"a@b.test"}, Subject: "x"}))
	})

	t.Run("Builds the Resend request", func(t *testing.T) {
		m := NewMailer(&config.Config{ResendAPIKey: "re_test", EmailFrom: "noreply@casa.test", EmailFromName: "CASA Portal"}, nil)
		var got *resend.SendEmailRequest
		m.send = func(params *resend.SendEmailRequest) (string, error) {
			got = params
			return "email_1", nil
		}
		require.NoError(t, m.Send(email))
		require.NotNil(t, got)
		assert.Equal(t, "CASA Portal <noreply@casa.test>", got.From)
		assert.Equal(t, []string{"support@casa.test"}, got.To)
		assert.Equal(t, "Hello", got.Text)
	})

	t.Run("Provider error is wrapped", func(t *testing.T) {
		m := NewMailer(&config.Config{ResendAPIKey: "re_test"}, nil)
		m.send = func(*resend.SendEmailRequest) (string, error) { return "", errors.New("rate limited") }
		err := m.Send(email)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})
}

func TestMailer_Notify(t *testing.T) {
	m := NewMailer(&config.Config{ResendAPIKey: "re_test"}, nil)
	done := make(chan *resend.SendEmailRequest, 1)
	m.send = func(params *resend.SendEmailRequest) (string, error) {
		done <- params
		return "email_1", nil
	}

	email := &Email{To: []string{"support@casa.test"}, Subject: "Async", TextBody: "body"}
	m.Notify(email)
	email.Subject = "changed after notify"

	select {
	case params := <-done:
		assert.Equal(t, "Async", params.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
}

func TestBuildFeedbackNotificationEmail(t *testing.T) {
	item := models.FeedbackItem{
		Category:   "bug",
		Subject:    "Broken <button>",
		Message:    "Clicking save does nothing",
		CaseNumber: "C-1",
	}
	email := BuildFeedbackNotificationEmail("support@casa.test", item, "jane@river.org")

	assert.Equal(t, []string{"support@casa.test"}, email.To)
	assert.Equal(t, "[CASA Portal] Feedback: Broken <button>", email.Subject)
	assert.Contains(t, email.HTMLBody, "Broken &lt;button&gt;")
	assert.Contains(t, email.HTMLBody, "C-1")
	assert.Contains(t, email.TextBody, "From: jane@river.org")
	assert.Contains(t, email.TextBody, "Case: C-1")
}
