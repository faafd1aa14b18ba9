package services

import (
	"context"
	"net/url"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// ReportService wraps home visit and court report endpoints
type ReportService struct {
	BaseService
}

func NewReportService(api *apiclient.Client, logger *zap.Logger) *ReportService {
	return &ReportService{BaseService: NewBaseService(api, logger)}
}

func (s *ReportService) GetHomeVisitReports(ctx context.Context, caseNumber string) (res apiclient.Result[[]models.HomeVisitReport]) {
	const fallback = "Failed to fetch home visit reports"
	defer guard(s.logger, "reports.home_visits", &res, fallback)

	q := url.Values{}
	setIf(q, "case_number", caseNumber)
	resp := s.api.Casa().Get(ctx, "/home-visit-reports", apiclient.WithQuery(q))
	return listResult[models.HomeVisitReport](resp, fallback, "reports", "home_visit_reports")
}

func (s *ReportService) GetHomeVisitReport(ctx context.Context, id string) (res apiclient.Result[models.HomeVisitReport]) {
	const fallback = "Failed to fetch home visit report"
	defer guard(s.logger, "reports.home_visit", &res, fallback)

	return objectResult[models.HomeVisitReport](s.api.Casa().Get(ctx, idPath("/home-visit-reports/%s", id)), fallback)
}

func (s *ReportService) CreateHomeVisitReport(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.HomeVisitReport]) {
	const fallback = "Failed to create home visit report"
	defer guard(s.logger, "reports.home_visit_create", &res, fallback)

	return objectResult[models.HomeVisitReport](s.api.Casa().Post(ctx, "/home-visit-reports", input), fallback)
}

func (s *ReportService) UpdateHomeVisitReport(ctx context.Context, id string, input map[string]interface{}) (res apiclient.Result[models.HomeVisitReport]) {
	const fallback = "Failed to update home visit report"
	defer guard(s.logger, "reports.home_visit_update", &res, fallback)

	return objectResult[models.HomeVisitReport](s.api.Casa().Put(ctx, idPath("/home-visit-reports/%s", id), input), fallback)
}

func (s *ReportService) GetCourtReports(ctx context.Context, caseNumber string) (res apiclient.Result[[]models.CourtReport]) {
	const fallback = "Failed to fetch court reports"
	defer guard(s.logger, "reports.court", &res, fallback)

	q := url.Values{}
	setIf(q, "case_number", caseNumber)
	resp := s.api.Casa().Get(ctx, "/court-reports", apiclient.WithQuery(q))
	return listResult[models.CourtReport](resp, fallback, "reports", "court_reports")
}

func (s *ReportService) GetCourtReport(ctx context.Context, id string) (res apiclient.Result[models.CourtReport]) {
	const fallback = "Failed to fetch court report"
	defer guard(s.logger, "reports.court_get", &res, fallback)

	return objectResult[models.CourtReport](s.api.Casa().Get(ctx, idPath("/court-reports/%s", id)), fallback)
}

func (s *ReportService) CreateCourtReport(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.CourtReport]) {
	const fallback = "Failed to create court report"
	defer guard(s.logger, "reports.court_create", &res, fallback)

	return objectResult[models.CourtReport](s.api.Casa().Post(ctx, "/court-reports", input), fallback)
}

func (s *ReportService) UpdateCourtReport(ctx context.Context, id string, input map[string]interface{}) (res apiclient.Result[models.CourtReport]) {
	const fallback = "Failed to update court report"
	defer guard(s.logger, "reports.court_update", &res, fallback)

	return objectResult[models.CourtReport](s.api.Casa().Put(ctx, idPath("/court-reports/%s", id), input), fallback)
}
