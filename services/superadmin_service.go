package services

import (
	"context"
	"encoding/json"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"
	"casa_portal_go/session"

	"go.uber.org/zap"
)

// OrganizationInput creates or updates an organization
type OrganizationInput struct {
	Name     string                       `json:"name" form:"name"`
	Slug     string                       `json:"slug" form:"slug"`
	Domain   string                       `json:"domain,omitempty" form:"domain"`
	Status   string                       `json:"status,omitempty" form:"status"`
	Settings *models.OrganizationSettings `json:"settings,omitempty"`
}

// SuperAdminService manages organizations across tenants. Every response is unwrapped
// with data.data ?? data.
type SuperAdminService struct {
	BaseService
	store session.Store
}

func NewSuperAdminService(api *apiclient.Client, logger *zap.Logger) *SuperAdminService {
	return &SuperAdminService{BaseService: NewBaseService(api, logger), store: api.Session()}
}

func (s *SuperAdminService) GetOrganizations(ctx context.Context) (res apiclient.Result[[]models.Organization]) {
	const fallback = "Failed to fetch organizations"
	defer guard(s.logger, "superadmin.organizations", &res, fallback)

	resp := s.api.Casa().Get(ctx, "/super-admin/organizations")
	return listResult[models.Organization](resp, fallback, "organizations")
}

func (s *SuperAdminService) GetOrganization(ctx context.Context, id string) (res apiclient.Result[models.Organization]) {
	const fallback = "Failed to fetch organization"
	defer guard(s.logger, "superadmin.organization", &res, fallback)

	return objectResult[models.Organization](s.api.Casa().Get(ctx, idPath("/super-admin/organizations/%s", id)), fallback)
}

func (s *SuperAdminService) CreateOrganization(ctx context.Context, input OrganizationInput) (res apiclient.Result[models.Organization]) {
	const fallback = "Failed to create organization"
	defer guard(s.logger, "superadmin.create", &res, fallback)

	input.Name = SanitizeText(input.Name)
	return objectResult[models.Organization](s.api.Casa().Post(ctx, "/super-admin/organizations", input), fallback)
}

func (s *SuperAdminService) UpdateOrganization(ctx context.Context, id string, input OrganizationInput) (res apiclient.Result[models.Organization]) {
	const fallback = "Failed to update organization"
	defer guard(s.logger, "superadmin.update", &res, fallback)

	input.Name = SanitizeText(input.Name)
	return objectResult[models.Organization](s.api.Casa().Put(ctx, idPath("/super-admin/organizations/%s", id), input), fallback)
}

func (s *SuperAdminService) DeleteOrganization(ctx context.Context, id string) (res apiclient.Result[json.RawMessage]) {
	const fallback = "Failed to delete organization"
	defer guard(s.logger, "superadmin.delete", &res, fallback)

	return emptyResult(s.api.Casa().Delete(ctx, idPath("/super-admin/organizations/%s", id)), fallback)
}

// GetOrganizationUsers lists the users of one organization
func (s *SuperAdminService) GetOrganizationUsers(ctx context.Context, id string) (res apiclient.Result[[]models.User]) {
	const fallback = "Failed to fetch organization users"
	defer guard(s.logger, "superadmin.users", &res, fallback)

	resp := s.api.Casa().Get(ctx, idPath("/super-admin/organizations/%s/users", id))
	return listResult[models.User](resp, fallback, "users")
}

// AssignUserToOrganization moves a user into an organization with a role
func (s *SuperAdminService) AssignUserToOrganization(ctx context.Context, userID, organizationID, role string) (res apiclient.Result[models.User]) {
	const fallback = "Failed to assign user"
	defer guard(s.logger, "superadmin.assign", &res, fallback)

	body := map[string]string{"organization_id": organizationID}
	if role != "" {
		body["role"] = role
	}
	return objectResult[models.User](s.api.Casa().Post(ctx, idPath("/super-admin/users/%s/assign", userID), body), fallback)
}

// SwitchOrganization changes the organization context of an administrator.
// On success the session's tenant id and organization data follow.
func (s *SuperAdminService) SwitchOrganization(ctx context.Context, organizationID string) (res apiclient.Result[models.Organization]) {
	const fallback = "Failed to switch organization"
	defer guard(s.logger, "superadmin.switch", &res, fallback)

	resp := s.api.Casa().Post(ctx, "/super-admin/switch-organization", map[string]string{"organization_id": organizationID})
	if !resp.Success {
		return apiclient.Fail[models.Organization](resp.ErrorOr(fallback))
	}

	org, err := decodeNested[models.Organization](resp.Data, "organization")
	if err != nil || org.ID == "" {
		org = models.Organization{ID: organizationID}
	}

	if s.store != nil {
		s.store.Set(session.KeyTenantID, org.ID)
		if data, err := json.Marshal(org); err == nil {
			s.store.Set(session.KeyOrganizationData, string(data))
		}
	}
	s.logger.Info("organization context switched", zap.String("organization_id", org.ID))
	return apiclient.OK(org)
}
