package services

import (
	"context"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// InviteRequest invites a new user into the current organization
type InviteRequest struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Role      string `json:"role" form:"role"`
}

// TenantService wraps the current organization endpoints
type TenantService struct {
	BaseService
}

func NewTenantService(api *apiclient.Client, logger *zap.Logger) *TenantService {
	return &TenantService{BaseService: NewBaseService(api, logger)}
}

func (s *TenantService) GetCurrentOrganization(ctx context.Context) (res apiclient.Result[models.Organization]) {
	const fallback = "Failed to fetch organization"
	defer guard(s.logger, "tenant.current", &res, fallback)

	return objectResult[models.Organization](s.api.Casa().Get(ctx, "/organizations/current"), fallback)
}

func (s *TenantService) UpdateOrganization(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.Organization]) {
	const fallback = "Failed to update organization"
	defer guard(s.logger, "tenant.update", &res, fallback)

	return objectResult[models.Organization](s.api.Casa().Put(ctx, "/organizations/current", input), fallback)
}

func (s *TenantService) GetSettings(ctx context.Context) (res apiclient.Result[models.OrganizationSettings]) {
	const fallback = "Failed to fetch settings"
	defer guard(s.logger, "tenant.settings", &res, fallback)

	resp := s.api.Casa().Get(ctx, "/settings")
	if !resp.Success {
		return apiclient.Fail[models.OrganizationSettings](resp.ErrorOr(fallback))
	}
	raw := UnwrapObject(resp.Data)
	if obj, ok := asObject(raw); ok {
		if nested, found := obj["settings"]; found {
			raw = nested
		}
	}
	settings, err := DecodeObject[models.OrganizationSettings](raw)
	if err != nil {
		return apiclient.Fail[models.OrganizationSettings](fallback)
	}
	return apiclient.OK(settings)
}

// UpdateSettings sends settings in the backend's snake_case form
func (s *TenantService) UpdateSettings(ctx context.Context, settings models.OrganizationSettings) (res apiclient.Result[models.OrganizationSettings]) {
	const fallback = "Failed to update settings"
	defer guard(s.logger, "tenant.settings_update", &res, fallback)

	body := map[string]interface{}{
		"allow_volunteer_self_registration": settings.AllowVolunteerSelfRegistration,
		"require_background_check":          settings.RequireBackgroundCheck,
		"max_cases_per_volunteer":           settings.MaxCasesPerVolunteer,
	}
	resp := s.api.Casa().Put(ctx, "/settings", body)
	if !resp.Success {
		return apiclient.Fail[models.OrganizationSettings](resp.ErrorOr(fallback))
	}
	return apiclient.OK(settings)
}

func (s *TenantService) GetUsers(ctx context.Context) (res apiclient.Result[[]models.User]) {
	const fallback = "Failed to fetch users"
	defer guard(s.logger, "tenant.users", &res, fallback)

	return listResult[models.User](s.api.Casa().Get(ctx, "/users"), fallback, "users")
}

func (s *TenantService) InviteUser(ctx context.Context, invite InviteRequest) (res apiclient.Result[models.User]) {
	const fallback = "Failed to invite user"
	defer guard(s.logger, "tenant.invite", &res, fallback)

	if invite.Role == "" {
		invite.Role = models.RoleVolunteer
	}
	return objectResult[models.User](s.api.Casa().Post(ctx, "/users/invite", invite), fallback)
}
