package services

import (
	"context"
	"encoding/json"
	"net/url"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// HearingService wraps the court hearing endpoints
type HearingService struct {
	BaseService
	cases *CaseService
}

func NewHearingService(api *apiclient.Client, logger *zap.Logger, cases *CaseService) *HearingService {
	return &HearingService{BaseService: NewBaseService(api, logger), cases: cases}
}

// GetHearings lists hearings, optionally filtered by the backend on case number
func (s *HearingService) GetHearings(ctx context.Context, caseNumber string) (res apiclient.Result[[]models.CourtHearing]) {
	const fallback = "Failed to fetch court hearings"
	defer guard(s.logger, "hearings.list", &res, fallback)

	q := url.Values{}
	setIf(q, "case_number", caseNumber)
	resp := s.api.Casa().Get(ctx, "/court-hearings", apiclient.WithQuery(q))
	return listResult[models.CourtHearing](resp, fallback, "hearings", "court_hearings")
}

// ForCase merges the dedicated hearings endpoint with the hearings embedded in the case
// record. Either source may fail; duplicates are dropped by id.
func (s *HearingService) ForCase(ctx context.Context, caseID, caseNumber string) (res apiclient.Result[[]models.CourtHearing]) {
	const fallback = "Failed to fetch court hearings"
	defer guard(s.logger, "hearings.for_case", &res, fallback)

	merged := []models.CourtHearing{}
	seen := make(map[string]struct{})
	add := func(h models.CourtHearing) {
		key := h.ID.String()
		if key != "" {
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
		}
		merged = append(merged, h)
	}

	// the case record supplies the join key when the caller does not know it
	var embedded []models.CourtHearing
	embeddedOK := false
	caseErr := ""
	if caseID != "" && s.cases != nil {
		c := s.cases.GetCase(ctx, caseID)
		if c.Success {
			embeddedOK = true
			embedded = c.Data.Hearings
			if caseNumber == "" {
				caseNumber = c.Data.CaseNumber.String()
			}
		} else {
			caseErr = c.Error
		}
	}

	dedicatedOK := false
	dedicatedErr := ""
	if caseNumber != "" {
		dedicated := s.GetHearings(ctx, caseNumber)
		dedicatedOK, dedicatedErr = dedicated.Success, dedicated.Error
		for _, h := range dedicated.Data {
			if h.CaseNumber.String() == caseNumber {
				add(h)
			}
		}
	}

	for _, h := range embedded {
		if h.CaseNumber == "" {
			h.CaseNumber = models.FlexString(caseNumber)
		}
		add(h)
	}

	if !dedicatedOK && !embeddedOK {
		return apiclient.Fail[[]models.CourtHearing](firstNonBlank(dedicatedErr, caseErr, fallback))
	}
	return apiclient.OK(merged)
}

func (s *HearingService) CreateHearing(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.CourtHearing]) {
	const fallback = "Failed to create court hearing"
	defer guard(s.logger, "hearings.create", &res, fallback)

	return objectResult[models.CourtHearing](s.api.Casa().Post(ctx, "/court-hearings", input), fallback)
}

func (s *HearingService) UpdateHearing(ctx context.Context, id string, input map[string]interface{}) (res apiclient.Result[models.CourtHearing]) {
	const fallback = "Failed to update court hearing"
	defer guard(s.logger, "hearings.update", &res, fallback)

	return objectResult[models.CourtHearing](s.api.Casa().Put(ctx, idPath("/court-hearings/%s", id), input), fallback)
}

func (s *HearingService) DeleteHearing(ctx context.Context, id string) (res apiclient.Result[json.RawMessage]) {
	const fallback = "Failed to delete court hearing"
	defer guard(s.logger, "hearings.delete", &res, fallback)

	return emptyResult(s.api.Casa().Delete(ctx, idPath("/court-hearings/%s", id)), fallback)
}
