package main

import (
	"net/http"

	"casa_portal_go/handlers"
	"casa_portal_go/middleware"
	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, loginLimiter *middleware.RateLimiter) {
	can := middleware.RequirePermission

	// Public routes
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	e.GET("/login", handlers.LoginHandler)
	e.POST("/login", handlers.LoginPostHandler, loginLimiter.Middleware())
	e.POST("/logout", handlers.LogoutHandler)

	// Pages and HTMX fragments
	pages := e.Group("")
	pages.Use(middleware.RequireAuth())
	{
		pages.GET("/dashboard", handlers.DashboardHandler)
		pages.GET("/htmx/volunteers/pipeline", handlers.PipelineBoardFragmentHandler, can(services.PermViewVolunteers))
		pages.POST("/htmx/volunteers/:id/pipeline-action", handlers.PipelineActionFragmentHandler, can(services.PermManageVolunteers))
	}

	api := e.Group("/api")
	api.POST("/auth/login", handlers.LoginPostHandler, loginLimiter.Middleware())
	api.POST("/auth/refresh", handlers.RefreshTokenHandler)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/auth/session", handlers.GetSessionHandler)
		protected.POST("/auth/validate", handlers.ValidateTokenHandler)
		protected.POST("/auth/logout", handlers.LogoutHandler)

		// Cases
		protected.GET("/cases", handlers.ListCasesHandler, can(services.PermViewCases))
		protected.GET("/cases/stats", handlers.CaseStatsHandler, can(services.PermViewCases))
		protected.GET("/cases/by-number/:number", handlers.GetCaseByNumberHandler, can(services.PermViewCases))
		protected.GET("/cases/:id", handlers.GetCaseHandler, can(services.PermViewCases))
		protected.GET("/cases/:id/hearings", handlers.CaseHearingsHandler, can(services.PermViewCases))
		protected.POST("/cases", handlers.CreateCaseHandler, can(services.PermEditCases))
		protected.PUT("/cases/:id", handlers.UpdateCaseHandler, can(services.PermEditCases))
		protected.DELETE("/cases/:id", handlers.DeleteCaseHandler, can(services.PermDeleteCases))
		protected.POST("/cases/:id/assign", handlers.AssignVolunteerHandler, can(services.PermManageVolunteers))

		// Contact logs
		protected.GET("/contact-logs", handlers.ListContactLogsHandler, can(services.PermViewCases))
		protected.GET("/contact-logs/:id", handlers.GetContactLogHandler, can(services.PermViewCases))
		protected.POST("/contact-logs", handlers.CreateContactLogHandler, can(services.PermLogContacts))
		protected.PUT("/contact-logs/:id", handlers.UpdateContactLogHandler, can(services.PermLogContacts))
		protected.DELETE("/contact-logs/:id", handlers.DeleteContactLogHandler, can(services.PermEditCases))

		// Court hearings
		protected.GET("/hearings", handlers.ListHearingsHandler, can(services.PermViewCases))
		protected.POST("/hearings", handlers.CreateHearingHandler, can(services.PermManageHearings))
		protected.PUT("/hearings/:id", handlers.UpdateHearingHandler, can(services.PermManageHearings))
		protected.DELETE("/hearings/:id", handlers.DeleteHearingHandler, can(services.PermManageHearings))

		// Documents
		protected.GET("/documents", handlers.ListDocumentsHandler, can(services.PermViewDocuments))
		protected.POST("/documents", handlers.UploadDocumentHandler, can(services.PermManageDocuments))
		protected.DELETE("/documents/:id", handlers.DeleteDocumentHandler, can(services.PermManageDocuments))
		protected.GET("/documents/:id/download", handlers.DownloadDocumentHandler, can(services.PermViewDocuments))

		// Reports
		protected.GET("/reports/home-visits", handlers.ListHomeVisitReportsHandler, can(services.PermViewReports))
		protected.GET("/reports/home-visits/:id", handlers.GetHomeVisitReportHandler, can(services.PermViewReports))
		protected.POST("/reports/home-visits", handlers.CreateHomeVisitReportHandler, can(services.PermCreateReports))
		protected.PUT("/reports/home-visits/:id", handlers.UpdateHomeVisitReportHandler, can(services.PermCreateReports))
		protected.GET("/reports/court", handlers.ListCourtReportsHandler, can(services.PermViewReports))
		protected.GET("/reports/court/:id", handlers.GetCourtReportHandler, can(services.PermViewReports))
		protected.POST("/reports/court", handlers.CreateCourtReportHandler, can(services.PermCreateReports))
		protected.PUT("/reports/court/:id", handlers.UpdateCourtReportHandler, can(services.PermCreateReports))

		// Feedback
		protected.GET("/feedback", handlers.ListFeedbackHandler, can(services.PermManageFeedback))
		protected.POST("/feedback", handlers.SubmitFeedbackHandler, can(services.PermSubmitFeedback))
		protected.PUT("/feedback/:id/status", handlers.UpdateFeedbackStatusHandler, can(services.PermManageFeedback))

		// Current organization
		protected.GET("/organization", handlers.GetOrganizationHandler)
		protected.PUT("/organization", handlers.UpdateOrganizationHandler, can(services.PermManageSettings))
		protected.GET("/organization/settings", handlers.GetSettingsHandler)
		protected.PUT("/organization/settings", handlers.UpdateSettingsHandler, can(services.PermManageSettings))
		protected.GET("/organization/users", handlers.ListOrganizationUsersHandler, can(services.PermManageUsers))
		protected.POST("/organization/invite", handlers.InviteUserHandler, can(services.PermManageUsers))

		// Audit log
		protected.GET("/audit-logs", handlers.ListAuditLogsHandler, can(services.PermViewAuditLogs))
		protected.GET("/audit-logs/export", handlers.ExportAuditLogsHandler, can(services.PermViewAuditLogs))
		protected.GET("/audit-logs/:id", handlers.GetAuditLogHandler, can(services.PermViewAuditLogs))
		protected.GET("/audit-logs/:id/download", handlers.DownloadAuditAttachmentHandler, can(services.PermViewAuditLogs))

		// Volunteers
		protected.GET("/volunteers", handlers.ListVolunteersHandler, can(services.PermViewVolunteers))
		protected.GET("/volunteers/pipeline", handlers.VolunteerPipelineHandler, can(services.PermViewVolunteers))
		protected.GET("/volunteers/export", handlers.ExportVolunteersHandler, can(services.PermManageVolunteers))
		protected.GET("/volunteers/:id", handlers.GetVolunteerHandler, can(services.PermViewVolunteers))
		protected.POST("/volunteers", handlers.CreateVolunteerHandler, can(services.PermManageVolunteers))
		protected.PUT("/volunteers/:id", handlers.UpdateVolunteerHandler, can(services.PermManageVolunteers))
		protected.DELETE("/volunteers/:id", handlers.DeleteVolunteerHandler, can(services.PermManageVolunteers))
		protected.POST("/volunteers/:id/pipeline-action", handlers.PipelineActionHandler, can(services.PermManageVolunteers))

		// Forms plugin
		protected.GET("/forms", handlers.ListFormsHandler)
		protected.GET("/forms/:name/meta", handlers.GetFormMetaHandler)
		protected.POST("/forms/:name/submissions", handlers.SubmitFormHandler)

		// Super admin
		admin := protected.Group("/super-admin", can(services.PermSuperAdmin))
		{
			admin.GET("/organizations", handlers.ListOrganizationsHandler)
			admin.POST("/organizations", handlers.CreateOrganizationHandler)
			admin.GET("/organizations/:id", handlers.GetAnyOrganizationHandler)
			admin.PUT("/organizations/:id", handlers.UpdateAnyOrganizationHandler)
			admin.DELETE("/organizations/:id", handlers.DeleteOrganizationHandler)
			admin.GET("/organizations/:id/users", handlers.ListAnyOrganizationUsersHandler)
			admin.POST("/users/:id/assign", handlers.AssignUserHandler)
			admin.POST("/switch-organization", handlers.SwitchOrganizationHandler)
		}
	}
}
