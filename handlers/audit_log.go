package handlers

import (
	"net/http"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

func auditFilters(c echo.Context) services.AuditFilters {
	return services.AuditFilters{
		PageQuery:    pageQuery(c),
		UserID:       c.QueryParam("user_id"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		CaseNumber:   c.QueryParam("case_number"),
		DateFrom:     c.QueryParam("date_from"),
		DateTo:       c.QueryParam("date_to"),
	}
}

// ListAuditLogsHandler lists audit entries with filters
func ListAuditLogsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Audit.GetAuditLogs(c.Request().Context(), auditFilters(c)), http.StatusOK)
}

// GetAuditLogHandler returns one audit entry
func GetAuditLogHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Audit.GetAuditLog(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// DownloadAuditAttachmentHandler redirects to an audit entry's attachment
func DownloadAuditAttachmentHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	res := suite.Audit.GetDownloadURL(c.Request().Context(), c.Param("id"))
	return redirectToDownload(c, res.Data.URL, res.Error)
}

// ExportAuditLogsHandler exports the filtered audit log as CSV (default) or XLSX
func ExportAuditLogsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	filters := auditFilters(c)
	switch c.QueryParam("format") {
	case "", services.FormatCSV:
		return sendExport(c, suite, suite.Audit.ExportCSV(c.Request().Context(), filters))
	case services.FormatXLSX:
		return sendExport(c, suite, suite.Audit.ExportXLSX(c.Request().Context(), filters))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "format must be csv or xlsx")
	}
}
