package models

import (
	"encoding/json"
	"strings"
)

// Role names used by the backend
const (
	RoleAdministrator  = "administrator"
	RoleCasaAdmin      = "casa_administrator"
	RoleCasaSupervisor = "casa_supervisor"
	RoleCasaStaff      = "casa_staff"
	RoleVolunteer      = "casa_volunteer"
	RoleSubscriber     = "subscriber"
)

// User is the signed-in account as kept in the session
type User struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Roles          []string `json:"roles"`
	OrganizationID string   `json:"organizationId"`
	IsActive       bool     `json:"isActive"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// HasRole checks if the user holds the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// IsAdministrator checks for the site-wide administrator role
func (u *User) IsAdministrator() bool {
	return u.HasRole(RoleAdministrator)
}

// HasOrganization checks if the user has an organization assigned
func (u *User) HasOrganization() bool {
	return u.OrganizationID != "" && u.OrganizationID != "0"
}

// FullName joins first and last name, falling back to the email
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// userWire accepts both the camelCase session shape and the backend's snake_case profile
type userWire struct {
	ID                  FlexString `json:"id"`
	UserID              FlexString `json:"user_id"`
	Email               string     `json:"email"`
	UserEmail           string     `json:"user_email"`
	FirstName           string     `json:"firstName"`
	FirstNameSnake      string     `json:"first_name"`
	LastName            string     `json:"lastName"`
	LastNameSnake       string     `json:"last_name"`
	Roles               []string   `json:"roles"`
	OrganizationID      FlexString `json:"organizationId"`
	OrganizationIDSnake FlexString `json:"organization_id"`
	IsActive            *FlexBool  `json:"isActive"`
	IsActiveSnake       *FlexBool  `json:"is_active"`
	CreatedAt           string     `json:"createdAt"`
	CreatedAtSnake      string     `json:"created_at"`
	UpdatedAt           string     `json:"updatedAt"`
	UpdatedAtSnake      string     `json:"updated_at"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	var w userWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*u = User{
		ID:             firstNonEmpty(w.ID.String(), w.UserID.String()),
		Email:          firstNonEmpty(w.Email, w.UserEmail),
		FirstName:      firstNonEmpty(w.FirstName, w.FirstNameSnake),
		LastName:       firstNonEmpty(w.LastName, w.LastNameSnake),
		Roles:          w.Roles,
		OrganizationID: firstNonEmpty(w.OrganizationID.String(), w.OrganizationIDSnake.String()),
		IsActive:       true,
		CreatedAt:      firstNonEmpty(w.CreatedAt, w.CreatedAtSnake),
		UpdatedAt:      firstNonEmpty(w.UpdatedAt, w.UpdatedAtSnake),
	}
	if w.IsActive != nil {
		u.IsActive = bool(*w.IsActive)
	} else if w.IsActiveSnake != nil {
		u.IsActive = bool(*w.IsActiveSnake)
	}
	if u.Roles == nil {
		u.Roles = []string{}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
