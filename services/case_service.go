package services

import (
	"context"
	"encoding/json"
	"net/url"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// CaseFilters narrows the case list
type CaseFilters struct {
	PageQuery
	Status      string
	VolunteerID string
	Priority    string
}

// CaseService wraps the case endpoints
type CaseService struct {
	BaseService
}

func NewCaseService(api *apiclient.Client, logger *zap.Logger) *CaseService {
	return &CaseService{BaseService: NewBaseService(api, logger)}
}

// GetCases lists cases visible to the current organization
func (s *CaseService) GetCases(ctx context.Context, filters CaseFilters) (res apiclient.Result[[]models.Case]) {
	const fallback = "Failed to fetch cases"
	defer guard(s.logger, "cases.list", &res, fallback)

	q := url.Values{}
	filters.apply(q)
	setIf(q, "status", filters.Status)
	setIf(q, "volunteer_id", filters.VolunteerID)
	setIf(q, "priority", filters.Priority)

	resp := s.api.Casa().Get(ctx, "/cases", apiclient.WithQuery(q))
	return listResult[models.Case](resp, fallback, "cases", "items")
}

// GetCase fetches one case by id
func (s *CaseService) GetCase(ctx context.Context, id string) (res apiclient.Result[models.Case]) {
	const fallback = "Failed to fetch case"
	defer guard(s.logger, "cases.get", &res, fallback)

	resp := s.api.Casa().Get(ctx, idPath("/cases/%s", id))
	return objectResult[models.Case](resp, fallback)
}

// GetCaseByNumber searches by case number and keeps the exact match
func (s *CaseService) GetCaseByNumber(ctx context.Context, caseNumber string) (res apiclient.Result[models.Case]) {
	const fallback = "Failed to fetch case"
	defer guard(s.logger, "cases.by_number", &res, fallback)

	list := s.GetCases(ctx, CaseFilters{PageQuery: PageQuery{Search: caseNumber}})
	if !list.Success {
		return apiclient.Fail[models.Case](list.Error)
	}
	for _, c := range list.Data {
		if c.CaseNumber.String() == caseNumber {
			return apiclient.OK(c)
		}
	}
	return apiclient.Fail[models.Case]("Case not found")
}

// CreateCase creates a case
func (s *CaseService) CreateCase(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.Case]) {
	const fallback = "Failed to create case"
	defer guard(s.logger, "cases.create", &res, fallback)

	resp := s.api.Casa().Post(ctx, "/cases", input)
	return objectResult[models.Case](resp, fallback)
}

// UpdateCase updates a case
func (s *CaseService) UpdateCase(ctx context.Context, id string, input map[string]interface{}) (res apiclient.Result[models.Case]) {
	const fallback = "Failed to update case"
	defer guard(s.logger, "cases.update", &res, fallback)

	resp := s.api.Casa().Put(ctx, idPath("/cases/%s", id), input)
	return objectResult[models.Case](resp, fallback)
}

// DeleteCase deletes a case
func (s *CaseService) DeleteCase(ctx context.Context, id string) (res apiclient.Result[json.RawMessage]) {
	const fallback = "Failed to delete case"
	defer guard(s.logger, "cases.delete", &res, fallback)

	return emptyResult(s.api.Casa().Delete(ctx, idPath("/cases/%s", id)), fallback)
}

// AssignVolunteer assigns a volunteer to a case
func (s *CaseService) AssignVolunteer(ctx context.Context, caseID, volunteerID string) (res apiclient.Result[models.Case]) {
	const fallback = "Failed to assign volunteer"
	defer guard(s.logger, "cases.assign", &res, fallback)

	body := map[string]string{"volunteer_id": volunteerID}
	resp := s.api.Casa().Post(ctx, idPath("/cases/%s/assign", caseID), body)
	return objectResult[models.Case](resp, fallback)
}

// GetStats fetches the dashboard summary
func (s *CaseService) GetStats(ctx context.Context) (res apiclient.Result[models.CaseStats]) {
	const fallback = "Failed to fetch dashboard stats"
	defer guard(s.logger, "cases.stats", &res, fallback)

	resp := s.api.Casa().Get(ctx, "/dashboard/stats")
	return objectResult[models.CaseStats](resp, fallback)
}
