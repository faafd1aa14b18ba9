package services

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// AuditFilters narrows the audit log list
type AuditFilters struct {
	PageQuery
	UserID       string
	Action       string
	ResourceType string
	CaseNumber   string
	DateFrom     string
	DateTo       string
}

func (f AuditFilters) values() url.Values {
	q := url.Values{}
	f.apply(q)
	setIf(q, "user_id", f.UserID)
	setIf(q, "action", f.Action)
	setIf(q, "resource_type", f.ResourceType)
	setIf(q, "case_number", f.CaseNumber)
	setIf(q, "date_from", f.DateFrom)
	setIf(q, "date_to", f.DateTo)
	return q
}

// exportPageSize bounds the rows pulled into a spreadsheet export
const exportPageSize = 1000

// AuditService wraps the audit log endpoints
type AuditService struct {
	BaseService
	now func() time.Time
}

func NewAuditService(api *apiclient.Client, logger *zap.Logger) *AuditService {
	return &AuditService{BaseService: NewBaseService(api, logger), now: time.Now}
}

func (s *AuditService) GetAuditLogs(ctx context.Context, filters AuditFilters) (res apiclient.Result[[]models.AuditLogEntry]) {
	const fallback = "Failed to fetch audit logs"
	defer guard(s.logger, "audit.list", &res, fallback)

	resp := s.api.Casa().Get(ctx, "/audit-logs", apiclient.WithQuery(filters.values()))
	return listResult[models.AuditLogEntry](resp, fallback, "logs", "audit_logs", "entries")
}

func (s *AuditService) GetAuditLog(ctx context.Context, id string) (res apiclient.Result[models.AuditLogEntry]) {
	const fallback = "Failed to fetch audit log"
	defer guard(s.logger, "audit.get", &res, fallback)

	return objectResult[models.AuditLogEntry](s.api.Casa().Get(ctx, idPath("/audit-logs/%s", id)), fallback)
}

// GetDownloadURL resolves the attachment link recorded with an audit entry
func (s *AuditService) GetDownloadURL(ctx context.Context, id string) (res apiclient.Result[models.DownloadLink]) {
	const fallback = "Failed to get download URL"
	defer guard(s.logger, "audit.download", &res, fallback)

	return downloadLink(s.api.Casa().Get(ctx, idPath("/audit-logs/%s/download", id)), fallback)
}

// ExportCSV returns the backend-generated CSV as is
func (s *AuditService) ExportCSV(ctx context.Context, filters AuditFilters) (res apiclient.Result[Export]) {
	const fallback = "Failed to export audit logs"
	defer guard(s.logger, "audit.export_csv", &res, fallback)

	q := filters.values()
	q.Set("format", "csv")
	resp := s.api.Casa().Get(ctx, "/audit-logs/export", apiclient.WithQuery(q), apiclient.WithHeader("Accept", "text/csv"))
	if !resp.Success {
		return apiclient.Fail[Export](resp.ErrorOr(fallback))
	}

	content := resp.Raw
	var text string
	if err := json.Unmarshal(UnwrapObject(resp.Data), &text); err == nil {
		content = []byte(text)
	}

	return apiclient.OK(Export{
		FileName:    ExportFileName("audit-logs", FormatCSV, s.now()),
		ContentType: ContentTypeCSV,
		Content:     content,
	})
}

// ExportXLSX builds a workbook from the filtered entries
func (s *AuditService) ExportXLSX(ctx context.Context, filters AuditFilters) (res apiclient.Result[Export]) {
	const fallback = "Failed to export audit logs"
	defer guard(s.logger, "audit.export_xlsx", &res, fallback)

	if filters.PerPage == 0 {
		filters.PerPage = exportPageSize
	}
	entries := s.GetAuditLogs(ctx, filters)
	if !entries.Success {
		return apiclient.Fail[Export](entries.Error)
	}

	headers := []string{"ID", "Date", "User", "Email", "Action", "Resource", "Resource ID", "Case Number", "Description", "IP Address"}
	rows := make([][]interface{}, 0, len(entries.Data))
	for _, e := range entries.Data {
		rows = append(rows, []interface{}{
			e.ID.String(), e.CreatedAt.String(), e.UserName.String(), e.UserEmail.String(), string(e.Action),
			e.ResourceType.String(), e.ResourceID.String(), e.CaseNumber.String(), e.Description.String(), e.IPAddress.String(),
		})
	}

	content, err := BuildWorkbook("Audit Logs", headers, rows)
	if err != nil {
		s.logger.Error("failed to build audit workbook", zap.Error(err))
		return apiclient.Fail[Export](fallback)
	}
	return apiclient.OK(Export{
		FileName:    ExportFileName("audit-logs", FormatXLSX, s.now()),
		ContentType: ContentTypeXLSX,
		Content:     content,
	})
}
