package services

import (
	"casa_portal_go/apiclient"
	"casa_portal_go/config"
	"casa_portal_go/services/formcache"

	"go.uber.org/zap"
)

// Deps are the process-wide collaborators shared by every request's services
type Deps struct {
	Logger   *zap.Logger
	Config   *config.Config
	FormMeta formcache.Cache
	Notifier Notifier
	Archiver *ExportArchiver
}

// Suite groups the domain services bound to one session
type Suite struct {
	Auth        *AuthService
	Cases       *CaseService
	ContactLogs *ContactLogService
	Hearings    *HearingService
	Documents   *DocumentService
	Reports     *ReportService
	Feedback    *FeedbackService
	Tenant      *TenantService
	Audit       *AuditService
	Volunteers  *VolunteerService
	Forms       *FormService
	SuperAdmin  *SuperAdminService
	Archiver    *ExportArchiver
}

// NewSuite builds the services over a session-bound client
func NewSuite(api *apiclient.Client, deps Deps) *Suite {
	logger := deps.Logger
	if logger == nil {
		logger = api.Logger()
	}

	var formIDs map[string]int
	supportEmail := ""
	if deps.Config != nil {
		formIDs = deps.Config.FormIDs
		supportEmail = deps.Config.SupportEmail
	}

	cases := NewCaseService(api, logger)
	return &Suite{
		Auth:        NewAuthService(api, logger),
		Cases:       cases,
		ContactLogs: NewContactLogService(api, logger),
		Hearings:    NewHearingService(api, logger, cases),
		Documents:   NewDocumentService(api, logger),
		Reports:     NewReportService(api, logger),
		Feedback:    NewFeedbackService(api, logger, deps.Notifier, supportEmail),
		Tenant:      NewTenantService(api, logger),
		Audit:       NewAuditService(api, logger),
		Volunteers:  NewVolunteerService(api, logger),
		Forms:       NewFormService(api, logger, deps.FormMeta, formIDs),
		SuperAdmin:  NewSuperAdminService(api, logger),
		Archiver:    deps.Archiver,
	}
}
