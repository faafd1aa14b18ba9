package services

import (
	"context"
	"net/url"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// FeedbackInput is what a user submits
type FeedbackInput struct {
	Category   string `json:"category" form:"category"`
	Subject    string `json:"subject" form:"subject"`
	Message    string `json:"message" form:"message"`
	Rating     int    `json:"rating,omitempty" form:"rating"`
	CaseNumber string `json:"case_number,omitempty" form:"case_number"`
	PageURL    string `json:"page_url,omitempty" form:"page_url"`
}

// FeedbackService wraps the feedback endpoints
type FeedbackService struct {
	BaseService
	notifier     Notifier
	supportEmail string
}

func NewFeedbackService(api *apiclient.Client, logger *zap.Logger, notifier Notifier, supportEmail string) *FeedbackService {
	return &FeedbackService{BaseService: NewBaseService(api, logger), notifier: notifier, supportEmail: supportEmail}
}

func (s *FeedbackService) GetFeedback(ctx context.Context, status string, page PageQuery) (res apiclient.Result[[]models.FeedbackItem]) {
	const fallback = "Failed to fetch feedback"
	defer guard(s.logger, "feedback.list", &res, fallback)

	q := url.Values{}
	page.apply(q)
	setIf(q, "status", status)
	resp := s.api.Casa().Get(ctx, "/feedback", apiclient.WithQuery(q))
	return listResult[models.FeedbackItem](resp, fallback, "feedback", "items")
}

// SubmitFeedback sanitizes and posts feedback, then notifies support without waiting
func (s *FeedbackService) SubmitFeedback(ctx context.Context, input FeedbackInput, submittedBy string) (res apiclient.Result[models.FeedbackItem]) {
	const fallback = "Failed to submit feedback"
	defer guard(s.logger, "feedback.submit", &res, fallback)

	body := map[string]interface{}{
		"category": SanitizeText(input.Category),
		"subject":  SanitizeText(input.Subject),
		"message":  SanitizeHTML(input.Message),
	}
	if input.Rating > 0 {
		body["rating"] = input.Rating
	}
	if input.CaseNumber != "" {
		body["case_number"] = SanitizeText(input.CaseNumber)
	}
	if input.PageURL != "" {
		body["page_url"] = input.PageURL
	}

	res = objectResult[models.FeedbackItem](s.api.Casa().Post(ctx, "/feedback", body), fallback)
	if res.Success && s.notifier != nil && s.supportEmail != "" {
		item := res.Data
		if item.Subject == "" {
			subject, _ := body["subject"].(string)
			message, _ := body["message"].(string)
			category, _ := body["category"].(string)
			item.Subject, item.Message, item.Category = models.FlexString(subject), models.FlexString(message), models.FlexString(category)
		}
		s.notifier.Notify(BuildFeedbackNotificationEmail(s.supportEmail, item, submittedBy))
	}
	return res
}

// UpdateFeedbackStatus changes the triage status of a feedback item
func (s *FeedbackService) UpdateFeedbackStatus(ctx context.Context, id, status, adminNotes string) (res apiclient.Result[models.FeedbackItem]) {
	const fallback = "Failed to update feedback"
	defer guard(s.logger, "feedback.update", &res, fallback)

	body := map[string]string{"status": status}
	if adminNotes != "" {
		body["admin_notes"] = SanitizeText(adminNotes)
	}
	return objectResult[models.FeedbackItem](s.api.Casa().Put(ctx, idPath("/feedback/%s", id), body), fallback)
}
