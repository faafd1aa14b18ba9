package models

// Case status constants
const (
	CaseStatusOpen    = "open"
	CaseStatusActive  = "active"
	CaseStatusPending = "pending"
	CaseStatusClosed  = "closed"
)

// Case represents a child advocacy case. Sub-resources reference it by CaseNumber.
type Case struct {
	ID                    FlexString     `json:"id"`
	CaseNumber            FlexString     `json:"case_number"`
	ChildFirstName        FlexString     `json:"child_first_name,omitempty"`
	ChildLastName         FlexString     `json:"child_last_name,omitempty"`
	ChildDOB              FlexString     `json:"child_dob,omitempty"`
	CaseType              FlexString     `json:"case_type,omitempty"`
	Status                FlexString     `json:"status,omitempty"`
	Priority              FlexString     `json:"priority,omitempty"`
	CourtJurisdiction     FlexString     `json:"court_jurisdiction,omitempty"`
	AssignedJudge         FlexString     `json:"assigned_judge,omitempty"`
	AssignedVolunteerID   FlexString     `json:"assigned_volunteer_id,omitempty"`
	AssignedVolunteerName FlexString     `json:"assigned_volunteer_name,omitempty"`
	NextCourtDate         FlexString     `json:"next_court_date,omitempty"`
	Summary               FlexString     `json:"summary,omitempty"`
	OrganizationID        FlexString     `json:"organization_id,omitempty"`
	CreatedAt             FlexString     `json:"created_at,omitempty"`
	UpdatedAt             FlexString     `json:"updated_at,omitempty"`
	Hearings              []CourtHearing `json:"hearings,omitempty"`
}

// ChildName returns the child's display name
func (c *Case) ChildName() string {
	if c.ChildLastName == "" {
		return c.ChildFirstName.String()
	}
	return string(c.ChildFirstName + " " + c.ChildLastName)
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// CaseStats is the dashboard summary returned by the backend
type CaseStats struct {
	TotalCases        FlexInt `json:"total_cases"`
	ActiveCases       FlexInt `json:"active_cases"`
	ClosedCases       FlexInt `json:"closed_cases"`
	UnassignedCases   FlexInt `json:"unassigned_cases"`
	ActiveVolunteers  FlexInt `json:"active_volunteers"`
	UpcomingHearings  FlexInt `json:"upcoming_hearings"`
	ContactsThisMonth FlexInt `json:"contacts_this_month"`
}
