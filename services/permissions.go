package services

import "casa_portal_go/models"

// Permission is a coarse UI-level capability. The backend remains the authority.
type Permission string

const (
	PermViewCases        Permission = "view_cases"
	PermEditCases        Permission = "edit_cases"
	PermDeleteCases      Permission = "delete_cases"
	PermViewVolunteers   Permission = "view_volunteers"
	PermManageVolunteers Permission = "manage_volunteers"
	PermViewDocuments    Permission = "view_documents"
	PermManageDocuments  Permission = "manage_documents"
	PermLogContacts      Permission = "log_contacts"
	PermManageHearings   Permission = "manage_hearings"
	PermViewReports      Permission = "view_reports"
	PermCreateReports    Permission = "create_reports"
	PermViewAuditLogs    Permission = "view_audit_logs"
	PermManageSettings   Permission = "manage_settings"
	PermManageUsers      Permission = "manage_users"
	PermSubmitFeedback   Permission = "submit_feedback"
	PermManageFeedback   Permission = "manage_feedback"
	PermSuperAdmin       Permission = "super_admin"
)

// rolePermissions grants per role; administrator is handled separately and holds everything
var rolePermissions = map[string][]Permission{
	models.RoleCasaAdmin: {
		PermViewCases, PermEditCases, PermDeleteCases,
		PermViewVolunteers, PermManageVolunteers,
		PermViewDocuments, PermManageDocuments,
		PermLogContacts, PermManageHearings,
		PermViewReports, PermCreateReports,
		PermViewAuditLogs, PermManageSettings, PermManageUsers,
		PermSubmitFeedback, PermManageFeedback,
	},
	models.RoleCasaSupervisor: {
		PermViewCases, PermEditCases,
		PermViewVolunteers, PermManageVolunteers,
		PermViewDocuments, PermManageDocuments,
		PermLogContacts, PermManageHearings,
		PermViewReports, PermCreateReports,
		PermViewAuditLogs, PermSubmitFeedback,
	},
	models.RoleCasaStaff: {
		PermViewCases, PermEditCases,
		PermViewVolunteers,
		PermViewDocuments, PermManageDocuments,
		PermLogContacts, PermManageHearings,
		PermViewReports, PermSubmitFeedback,
	},
	models.RoleVolunteer: {
		PermViewCases, PermViewDocuments,
		PermLogContacts, PermCreateReports,
		PermSubmitFeedback,
	},
}

// HasPermission: administrator implies every permission, other roles use the table,
// unknown roles grant nothing.
func HasPermission(user *models.User, permission Permission) bool {
	if user == nil {
		return false
	}
	if user.IsAdministrator() {
		return true
	}
	for _, role := range user.Roles {
		for _, p := range rolePermissions[role] {
			if p == permission {
				return true
			}
		}
	}
	return false
}

// CanAccessOrganization allows the user's own organization, or any for administrators
func CanAccessOrganization(user *models.User, organizationID string) bool {
	if user == nil {
		return false
	}
	if user.IsAdministrator() {
		return true
	}
	return organizationID != "" && user.OrganizationID == organizationID
}
