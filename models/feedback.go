package models

// Feedback status constants
const (
	FeedbackStatusNew        = "new"
	FeedbackStatusInProgress = "in_progress"
	FeedbackStatusResolved   = "resolved"
)

// FeedbackItem is user feedback submitted from the portal
type FeedbackItem struct {
	ID         FlexString `json:"id"`
	Category   FlexString `json:"category"`
	Subject    FlexString `json:"subject"`
	Message    FlexString `json:"message"`
	Rating     FlexInt    `json:"rating,omitempty"`
	Status     FlexString `json:"status,omitempty"`
	CaseNumber FlexString `json:"case_number,omitempty"`
	PageURL    FlexString `json:"page_url,omitempty"`
	UserID     FlexString `json:"user_id,omitempty"`
	UserEmail  FlexString `json:"user_email,omitempty"`
	AdminNotes FlexString `json:"admin_notes,omitempty"`
	CreatedAt  FlexString `json:"created_at,omitempty"`
}
