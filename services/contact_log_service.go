package services

import (
	"context"
	"encoding/json"
	"net/url"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// ContactLogService wraps the contact log endpoints
type ContactLogService struct {
	BaseService
}

func NewContactLogService(api *apiclient.Client, logger *zap.Logger) *ContactLogService {
	return &ContactLogService{BaseService: NewBaseService(api, logger)}
}

// GetContactLogs lists contact logs. A non-empty caseNumber keeps only that case's logs.
func (s *ContactLogService) GetContactLogs(ctx context.Context, caseNumber string, page PageQuery) (res apiclient.Result[[]models.ContactLog]) {
	const fallback = "Failed to fetch contact logs"
	defer guard(s.logger, "contact_logs.list", &res, fallback)

	q := url.Values{}
	page.apply(q)
	setIf(q, "case_number", caseNumber)

	resp := s.api.Casa().Get(ctx, "/contact-logs", apiclient.WithQuery(q))
	res = listResult[models.ContactLog](resp, fallback, "contact_logs", "logs")
	if !res.Success || caseNumber == "" {
		return res
	}

	filtered := make([]models.ContactLog, 0, len(res.Data))
	for _, log := range res.Data {
		if log.CaseNumber.String() == caseNumber {
			filtered = append(filtered, log)
		}
	}
	return apiclient.OK(filtered)
}

func (s *ContactLogService) GetContactLog(ctx context.Context, id string) (res apiclient.Result[models.ContactLog]) {
	const fallback = "Failed to fetch contact log"
	defer guard(s.logger, "contact_logs.get", &res, fallback)

	return objectResult[models.ContactLog](s.api.Casa().Get(ctx, idPath("/contact-logs/%s", id)), fallback)
}

func (s *ContactLogService) CreateContactLog(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.ContactLog]) {
	const fallback = "Failed to create contact log"
	defer guard(s.logger, "contact_logs.create", &res, fallback)

	return objectResult[models.ContactLog](s.api.Casa().Post(ctx, "/contact-logs", input), fallback)
}

func (s *ContactLogService) UpdateContactLog(ctx context.Context, id string, input map[string]interface{}) (res apiclient.Result[models.ContactLog]) {
	const fallback = "Failed to update contact log"
	defer guard(s.logger, "contact_logs.update", &res, fallback)

	return objectResult[models.ContactLog](s.api.Casa().Put(ctx, idPath("/contact-logs/%s", id), input), fallback)
}

func (s *ContactLogService) DeleteContactLog(ctx context.Context, id string) (res apiclient.Result[json.RawMessage]) {
	const fallback = "Failed to delete contact log"
	defer guard(s.logger, "contact_logs.delete", &res, fallback)

	return emptyResult(s.api.Casa().Delete(ctx, idPath("/contact-logs/%s", id)), fallback)
}
