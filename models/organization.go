package models

import "encoding/json"

// Organization status values
const (
	OrganizationStatusActive    = "active"
	OrganizationStatusInactive  = "inactive"
	OrganizationStatusSuspended = "suspended"
)

// OrganizationSettings holds per-program options
type OrganizationSettings struct {
	AllowVolunteerSelfRegistration bool `json:"allowVolunteerSelfRegistration"`
	RequireBackgroundCheck         bool `json:"requireBackgroundCheck"`
	MaxCasesPerVolunteer           int  `json:"maxCasesPerVolunteer"`
}

// Organization is a CASA program (tenant)
type Organization struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Slug      string               `json:"slug"`
	Domain    string               `json:"domain,omitempty"`
	Status    string               `json:"status"`
	Settings  OrganizationSettings `json:"settings"`
	CreatedAt string               `json:"createdAt,omitempty"`
	UpdatedAt string               `json:"updatedAt,omitempty"`
}

// IsActive checks if the organization is active
func (o *Organization) IsActive() bool {
	return o.Status == "" || o.Status == OrganizationStatusActive
}

// DefaultOrganizationSettings mirrors the backend defaults for new programs
func DefaultOrganizationSettings() OrganizationSettings {
	return OrganizationSettings{
		AllowVolunteerSelfRegistration: true,
		RequireBackgroundCheck:         true,
		MaxCasesPerVolunteer:           3,
	}
}

type organizationSettingsWire struct {
	AllowSelfRegistration      *FlexBool `json:"allowVolunteerSelfRegistration"`
	AllowSelfRegistrationSnake *FlexBool `json:"allow_volunteer_self_registration"`
	RequireBackgroundCheck     *FlexBool `json:"requireBackgroundCheck"`
	RequireBackgroundSnake     *FlexBool `json:"require_background_check"`
	MaxCases                   *FlexInt  `json:"maxCasesPerVolunteer"`
	MaxCasesSnake              *FlexInt  `json:"max_cases_per_volunteer"`
}

func (s *OrganizationSettings) UnmarshalJSON(b []byte) error {
	var w organizationSettingsWire
	if err := json.Unmarshal(b, &w); err != nil {
		// some endpoints send settings as an empty list
		*s = OrganizationSettings{}
		return nil
	}
	*s = OrganizationSettings{
		AllowVolunteerSelfRegistration: pickBool(w.AllowSelfRegistration, w.AllowSelfRegistrationSnake),
		RequireBackgroundCheck:         pickBool(w.RequireBackgroundCheck, w.RequireBackgroundSnake),
	}
	if w.MaxCases != nil {
		s.MaxCasesPerVolunteer = int(*w.MaxCases)
	} else if w.MaxCasesSnake != nil {
		s.MaxCasesPerVolunteer = int(*w.MaxCasesSnake)
	}
	return nil
}

func pickBool(values ...*FlexBool) bool {
	for _, v := range values {
		if v != nil {
			return bool(*v)
		}
	}
	return false
}

type organizationWire struct {
	ID             FlexString           `json:"id"`
	OrganizationID FlexString           `json:"organization_id"`
	Name           string               `json:"name"`
	Slug           string               `json:"slug"`
	Domain         string               `json:"domain"`
	Status         string               `json:"status"`
	Settings       OrganizationSettings `json:"settings"`
	CreatedAt      string               `json:"createdAt"`
	CreatedAtSnake string               `json:"created_at"`
	UpdatedAt      string               `json:"updatedAt"`
	UpdatedAtSnake string               `json:"updated_at"`
}

func (o *Organization) UnmarshalJSON(b []byte) error {
	var w organizationWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*o = Organization{
		ID:        firstNonEmpty(w.ID.String(), w.OrganizationID.String()),
		Name:      w.Name,
		Slug:      w.Slug,
		Domain:    w.Domain,
		Status:    w.Status,
		Settings:  w.Settings,
		CreatedAt: firstNonEmpty(w.CreatedAt, w.CreatedAtSnake),
		UpdatedAt: firstNonEmpty(w.UpdatedAt, w.UpdatedAtSnake),
	}
	return nil
}
