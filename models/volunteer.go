package models

// VolunteerStatus is the onboarding pipeline stage
type VolunteerStatus string

const (
	VolunteerStatusApplied         VolunteerStatus = "applied"
	VolunteerStatusBackgroundCheck VolunteerStatus = "background_check"
	VolunteerStatusTraining        VolunteerStatus = "training"
	VolunteerStatusActive          VolunteerStatus = "active"
	VolunteerStatusRejected        VolunteerStatus = "rejected"
)

// PipelineStages lists the Kanban columns in display order
var PipelineStages = []VolunteerStatus{
	VolunteerStatusApplied,
	VolunteerStatusBackgroundCheck,
	VolunteerStatusTraining,
	VolunteerStatusActive,
	VolunteerStatusRejected,
}

// ParseVolunteerStatus maps a backend value onto a pipeline stage.
// Unrecognized values land in the applied stage.
func ParseVolunteerStatus(s string) VolunteerStatus {
	for _, stage := range PipelineStages {
		if string(stage) == s {
			return stage
		}
	}
	return VolunteerStatusApplied
}

// Label returns the column heading for a stage
func (s VolunteerStatus) Label() string {
	switch s {
	case VolunteerStatusBackgroundCheck:
		return "Background Check"
	case VolunteerStatusTraining:
		return "Training"
	case VolunteerStatusActive:
		return "Active"
	case VolunteerStatusRejected:
		return "Rejected"
	default:
		return "Applied"
	}
}

// VolunteerRecord is the volunteer as the backend returns it
type VolunteerRecord struct {
	ID                       FlexString `json:"id"`
	UserID                   FlexString `json:"user_id,omitempty"`
	FirstName                FlexString `json:"first_name"`
	LastName                 FlexString `json:"last_name"`
	Email                    FlexString `json:"email"`
	Phone                    FlexString `json:"phone,omitempty"`
	DateOfBirth              FlexString `json:"date_of_birth,omitempty"`
	Address                  FlexString `json:"address,omitempty"`
	City                     FlexString `json:"city,omitempty"`
	State                    FlexString `json:"state,omitempty"`
	ZipCode                  FlexString `json:"zip_code,omitempty"`
	EmergencyContactName     FlexString `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    FlexString `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation FlexString `json:"emergency_contact_relationship,omitempty"`
	BackgroundCheckStatus    FlexString `json:"background_check_status,omitempty"`
	BackgroundCheckDate      FlexString `json:"background_check_date,omitempty"`
	TrainingStatus           FlexString `json:"training_status,omitempty"`
	TrainingCompletedDate    FlexString `json:"training_completed_date,omitempty"`
	VolunteerStatus          FlexString `json:"volunteer_status,omitempty"`
	CasesAssigned            FlexInt    `json:"cases_assigned,omitempty"`
	MaxCases                 FlexInt    `json:"max_cases,omitempty"`
	AvailableWeekdays        FlexBool   `json:"available_weekdays,omitempty"`
	AvailableEvenings        FlexBool   `json:"available_evenings,omitempty"`
	AvailableWeekends        FlexBool   `json:"available_weekends,omitempty"`
	Languages                FlexString `json:"languages,omitempty"`
	Notes                    FlexString `json:"notes,omitempty"`
	OrganizationID           FlexString `json:"organization_id,omitempty"`
	CreatedAt                FlexString `json:"created_at,omitempty"`
	UpdatedAt                FlexString `json:"updated_at,omitempty"`
}

// Address is only present on a view when the street line is known
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// EmergencyContact is only present on a view when a contact name is known
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Availability flags
type Availability struct {
	Weekdays bool `json:"weekdays"`
	Evenings bool `json:"evenings"`
	Weekends bool `json:"weekends"`
}

// Volunteer is the camelCase view-model used by the portal
type Volunteer struct {
	ID                    string            `json:"id"`
	UserID                string            `json:"userId,omitempty"`
	FirstName             string            `json:"firstName"`
	LastName              string            `json:"lastName"`
	Email                 string            `json:"email"`
	Phone                 string            `json:"phone,omitempty"`
	DateOfBirth           string            `json:"dateOfBirth,omitempty"`
	Address               *Address          `json:"address,omitempty"`
	EmergencyContact      *EmergencyContact `json:"emergencyContact,omitempty"`
	BackgroundCheckStatus string            `json:"backgroundCheckStatus,omitempty"`
	BackgroundCheckDate   string            `json:"backgroundCheckDate,omitempty"`
	TrainingStatus        string            `json:"trainingStatus,omitempty"`
	TrainingCompletedDate string            `json:"trainingCompletedDate,omitempty"`
	VolunteerStatus       VolunteerStatus   `json:"volunteerStatus"`
	CasesAssigned         int               `json:"casesAssigned"`
	MaxCases              int               `json:"maxCases,omitempty"`
	Availability          Availability      `json:"availability"`
	Languages             string            `json:"languages,omitempty"`
	Notes                 string            `json:"notes,omitempty"`
	CreatedAt             string            `json:"createdAt,omitempty"`
	UpdatedAt             string            `json:"updatedAt,omitempty"`
}

// FullName joins first and last name
func (v *Volunteer) FullName() string {
	if v.LastName == "" {
		return v.FirstName
	}
	return v.FirstName + " " + v.LastName
}

// PipelineBoard groups volunteers by stage. Every stage key is always present.
type PipelineBoard map[VolunteerStatus][]Volunteer

// NewPipelineBoard returns a board with all five stages empty
func NewPipelineBoard() PipelineBoard {
	board := make(PipelineBoard, len(PipelineStages))
	for _, stage := range PipelineStages {
		board[stage] = []Volunteer{}
	}
	return board
}

// Total counts volunteers across all stages
func (b PipelineBoard) Total() int {
	total := 0
	for _, vs := range b {
		total += len(vs)
	}
	return total
}

// PipelineAction is a transition request understood by the backend
type PipelineAction string

const (
	PipelineActionStartBackgroundCheck   PipelineAction = "start_background_check"
	PipelineActionApproveBackgroundCheck PipelineAction = "approve_background_check"
	PipelineActionStartTraining          PipelineAction = "start_training"
	PipelineActionCompleteTraining       PipelineAction = "complete_training"
	PipelineActionActivate               PipelineAction = "activate"
	PipelineActionReject                 PipelineAction = "reject"
	PipelineActionReopen                 PipelineAction = "reopen"
)

// IsValid checks membership in the known action set. Whether the action is legal for the
// volunteer's current stage is decided by the backend.
func (a PipelineAction) IsValid() bool {
	switch a {
	case PipelineActionStartBackgroundCheck, PipelineActionApproveBackgroundCheck,
		PipelineActionStartTraining, PipelineActionCompleteTraining,
		PipelineActionActivate, PipelineActionReject, PipelineActionReopen:
		return true
	}
	return false
}

// PipelineActionRequest is posted to the per-volunteer pipeline endpoint
type PipelineActionRequest struct {
	Action          PipelineAction `json:"action" form:"action"`
	Notes           string         `json:"notes,omitempty" form:"notes"`
	RejectionReason string         `json:"rejection_reason,omitempty" form:"rejection_reason"`
}

// PipelineActionResult reports the transition and any account provisioning side effects
type PipelineActionResult struct {
	OldStatus         VolunteerStatus `json:"oldStatus"`
	NewStatus         VolunteerStatus `json:"newStatus"`
	UserCreated       bool            `json:"userCreated,omitempty"`
	Username          string          `json:"username,omitempty"`
	TemporaryPassword string          `json:"temporaryPassword,omitempty"`
	WelcomeEmailSent  bool            `json:"welcomeEmailSent,omitempty"`
	Message           string          `json:"message,omitempty"`
}
