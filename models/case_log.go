package models

// Contact type constants
const (
	ContactTypeFaceToFace = "face_to_face"
	ContactTypePhone      = "phone"
	ContactTypeEmail      = "email"
	ContactTypeVideo      = "video"
	ContactTypeOther      = "other"
)

// ContactLog records a volunteer's contact with a child or party on a case
type ContactLog struct {
	ID              FlexString `json:"id"`
	CaseNumber      FlexString `json:"case_number"`
	ChildName       FlexString `json:"child_name,omitempty"`
	ContactType     FlexString `json:"contact_type"`
	ContactDate     FlexString `json:"contact_date"`
	ContactTime     FlexString `json:"contact_time,omitempty"`
	DurationMinutes FlexInt    `json:"duration_minutes,omitempty"`
	Location        FlexString `json:"location,omitempty"`
	Participants    FlexString `json:"participants,omitempty"`
	Purpose         FlexString `json:"purpose,omitempty"`
	Summary         FlexString `json:"summary,omitempty"`
	Concerns        FlexString `json:"concerns,omitempty"`
	FollowUpNeeded  FlexBool   `json:"follow_up_required,omitempty"`
	FollowUpNotes   FlexString `json:"follow_up_notes,omitempty"`
	MileageMiles    FlexInt    `json:"mileage,omitempty"`
	VolunteerID     FlexString `json:"volunteer_id,omitempty"`
	VolunteerName   FlexString `json:"volunteer_name,omitempty"`
	CreatedAt       FlexString `json:"created_at,omitempty"`
}
