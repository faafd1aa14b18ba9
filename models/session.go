package models

// Session is the client-side view of a signed-in user
type Session struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	User         *User         `json:"user"`
	Organization *Organization `json:"organization"`
}

// IsValid checks that the session carries a token and a user
func (s *Session) IsValid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Credentials is the login form payload
type Credentials struct {
	Email            string `json:"email" form:"email"`
	Password         string `json:"password" form:"password"`
	OrganizationSlug string `json:"organizationSlug,omitempty" form:"organization_slug"`
}
