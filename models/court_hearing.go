package models

// Hearing status constants
const (
	HearingStatusScheduled = "scheduled"
	HearingStatusCompleted = "completed"
	HearingStatusPostponed = "postponed"
	HearingStatusCancelled = "cancelled"
)

// CourtHearing is a scheduled court date for a case
type CourtHearing struct {
	ID          FlexString `json:"id"`
	CaseNumber  FlexString `json:"case_number"`
	HearingType FlexString `json:"hearing_type,omitempty"`
	HearingDate FlexString `json:"hearing_date"`
	HearingTime FlexString `json:"hearing_time,omitempty"`
	CourtRoom   FlexString `json:"court_room,omitempty"`
	Judge       FlexString `json:"judge_name,omitempty"`
	Status      FlexString `json:"status,omitempty"`
	Notes       FlexString `json:"notes,omitempty"`
	Outcome     FlexString `json:"outcome,omitempty"`
	CreatedAt   FlexString `json:"created_at,omitempty"`
}

// HomeVisitReport is a volunteer's report of a home visit
type HomeVisitReport struct {
	ID                 FlexString `json:"id"`
	CaseNumber         FlexString `json:"case_number"`
	VisitDate          FlexString `json:"visit_date"`
	VisitType          FlexString `json:"visit_type,omitempty"`
	Attendees          FlexString `json:"attendees,omitempty"`
	ChildWellbeing     FlexString `json:"child_wellbeing,omitempty"`
	HomeEnvironment    FlexString `json:"home_environment,omitempty"`
	SafetyConcerns     FlexString `json:"safety_concerns,omitempty"`
	Recommendations    FlexString `json:"recommendations,omitempty"`
	FollowUpActions    FlexString `json:"follow_up_actions,omitempty"`
	Status             FlexString `json:"status,omitempty"`
	VolunteerID        FlexString `json:"volunteer_id,omitempty"`
	SupervisorReviewed FlexBool   `json:"supervisor_reviewed,omitempty"`
	CreatedAt          FlexString `json:"created_at,omitempty"`
}

// CourtReport is a report prepared for a hearing
type CourtReport struct {
	ID              FlexString `json:"id"`
	CaseNumber      FlexString `json:"case_number"`
	HearingID       FlexString `json:"hearing_id,omitempty"`
	ReportType      FlexString `json:"report_type,omitempty"`
	Title           FlexString `json:"title,omitempty"`
	Content         FlexString `json:"content,omitempty"`
	Recommendations FlexString `json:"recommendations,omitempty"`
	Status          FlexString `json:"status,omitempty"`
	DueDate         FlexString `json:"due_date,omitempty"`
	SubmittedAt     FlexString `json:"submitted_at,omitempty"`
	AuthorID        FlexString `json:"author_id,omitempty"`
	CreatedAt       FlexString `json:"created_at,omitempty"`
}
