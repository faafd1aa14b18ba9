package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// ErrInvalidAction is returned for pipeline actions outside the known set
var ErrInvalidAction = errors.New("invalid pipeline action")

// VolunteerFilters narrows the volunteer list
type VolunteerFilters struct {
	PageQuery
	Status string
}

// VolunteerService wraps the volunteer endpoints and builds the onboarding pipeline
type VolunteerService struct {
	BaseService
	now func() time.Time
}

func NewVolunteerService(api *apiclient.Client, logger *zap.Logger) *VolunteerService {
	return &VolunteerService{BaseService: NewBaseService(api, logger), now: time.Now}
}

// GetVolunteerRecords lists volunteers in the backend's shape
func (s *VolunteerService) GetVolunteerRecords(ctx context.Context, filters VolunteerFilters) (res apiclient.Result[[]models.VolunteerRecord]) {
	const fallback = "Failed to fetch volunteers"
	defer guard(s.logger, "volunteers.list", &res, fallback)

	q := url.Values{}
	filters.apply(q)
	setIf(q, "status", filters.Status)
	resp := s.api.Casa().Get(ctx, "/volunteers", apiclient.WithQuery(q))
	return listResult[models.VolunteerRecord](resp, fallback, "volunteers")
}

// GetVolunteers lists volunteers as view-models
func (s *VolunteerService) GetVolunteers(ctx context.Context, filters VolunteerFilters) apiclient.Result[[]models.Volunteer] {
	records := s.GetVolunteerRecords(ctx, filters)
	if !records.Success {
		return apiclient.Fail[[]models.Volunteer](records.Error)
	}
	views := make([]models.Volunteer, 0, len(records.Data))
	for _, r := range records.Data {
		views = append(views, TransformVolunteer(r))
	}
	return apiclient.OK(views)
}

func (s *VolunteerService) GetVolunteer(ctx context.Context, id string) (res apiclient.Result[models.Volunteer]) {
	const fallback = "Failed to fetch volunteer"
	defer guard(s.logger, "volunteers.get", &res, fallback)

	record := objectResult[models.VolunteerRecord](s.api.Casa().Get(ctx, idPath("/volunteers/%s", id)), fallback)
	if !record.Success {
		return apiclient.Fail[models.Volunteer](record.Error)
	}
	return apiclient.OK(TransformVolunteer(record.Data))
}

func (s *VolunteerService) CreateVolunteer(ctx context.Context, input map[string]interface{}) (res apiclient.Result[models.Volunteer]) {
	const fallback = "Failed to create volunteer"
	defer guard(s.logger, "volunteers.create", &res, fallback)

	record := objectResult[models.VolunteerRecord](s.api.Casa().Post(ctx, "/volunteers", input), fallback)
	if !record.Success {
		return apiclient.Fail[models.Volunteer](record.Error)
	}
	return apiclient.OK(TransformVolunteer(record.Data))
}

func (s *VolunteerService) UpdateVolunteer(ctx context.Context, id string, input map[string]interface{}) (res apiclient.Result[models.Volunteer]) {
	const fallback = "Failed to update volunteer"
	defer guard(s.logger, "volunteers.update", &res, fallback)

	record := objectResult[models.VolunteerRecord](s.api.Casa().Put(ctx, idPath("/volunteers/%s", id), input), fallback)
	if !record.Success {
		return apiclient.Fail[models.Volunteer](record.Error)
	}
	return apiclient.OK(TransformVolunteer(record.Data))
}

func (s *VolunteerService) DeleteVolunteer(ctx context.Context, id string) (res apiclient.Result[json.RawMessage]) {
	const fallback = "Failed to delete volunteer"
	defer guard(s.logger, "volunteers.delete", &res, fallback)

	return emptyResult(s.api.Casa().Delete(ctx, idPath("/volunteers/%s", id)), fallback)
}

// GetVolunteersByPipeline fetches the list once and buckets every volunteer by stage.
// Unrecognized statuses land in the applied stage; no volunteer is dropped.
func (s *VolunteerService) GetVolunteersByPipeline(ctx context.Context) (res apiclient.Result[models.PipelineBoard]) {
	const fallback = "Failed to fetch volunteer pipeline"
	defer guard(s.logger, "volunteers.pipeline", &res, fallback)

	records := s.GetVolunteerRecords(ctx, VolunteerFilters{})
	if !records.Success {
		return apiclient.Fail[models.PipelineBoard](records.Error)
	}
	return apiclient.OK(BuildPipelineBoard(records.Data))
}

// BuildPipelineBoard partitions records into the five fixed stages
func BuildPipelineBoard(records []models.VolunteerRecord) models.PipelineBoard {
	board := models.NewPipelineBoard()
	for _, r := range records {
		v := TransformVolunteer(r)
		board[v.VolunteerStatus] = append(board[v.VolunteerStatus], v)
	}
	return board
}

// TransformVolunteer renames backend fields into the view-model.
// Address is omitted without a street line; the emergency contact without a name.
func TransformVolunteer(r models.VolunteerRecord) models.Volunteer {
	v := models.Volunteer{
		ID:                    r.ID.String(),
		UserID:                r.UserID.String(),
		FirstName:             r.FirstName.String(),
		LastName:              r.LastName.String(),
		Email:                 r.Email.String(),
		Phone:                 r.Phone.String(),
		DateOfBirth:           r.DateOfBirth.String(),
		BackgroundCheckStatus: r.BackgroundCheckStatus.String(),
		BackgroundCheckDate:   r.BackgroundCheckDate.String(),
		TrainingStatus:        r.TrainingStatus.String(),
		TrainingCompletedDate: r.TrainingCompletedDate.String(),
		VolunteerStatus:       models.ParseVolunteerStatus(r.VolunteerStatus.String()),
		CasesAssigned:         int(r.CasesAssigned),
		MaxCases:              int(r.MaxCases),
		Availability: models.Availability{
			Weekdays: bool(r.AvailableWeekdays),
			Evenings: bool(r.AvailableEvenings),
			Weekends: bool(r.AvailableWeekends),
		},
		Languages: r.Languages.String(),
		Notes:     r.Notes.String(),
		CreatedAt: r.CreatedAt.String(),
		UpdatedAt: r.UpdatedAt.String(),
	}

	if strings.TrimSpace(r.Address.String()) != "" {
		v.Address = &models.Address{
			Street:  r.Address.String(),
			City:    r.City.String(),
			State:   r.State.String(),
			ZipCode: r.ZipCode.String(),
		}
	}
	if strings.TrimSpace(r.EmergencyContactName.String()) != "" {
		v.EmergencyContact = &models.EmergencyContact{
			Name:         r.EmergencyContactName.String(),
			Phone:        r.EmergencyContactPhone.String(),
			Relationship: r.EmergencyContactRelation.String(),
		}
	}
	return v
}

// PipelineAction transitions a volunteer. Only membership in the known action set is checked
// here; the backend decides whether the transition is legal from the current stage.
func (s *VolunteerService) PipelineAction(ctx context.Context, id string, req models.PipelineActionRequest) (res apiclient.Result[models.PipelineActionResult]) {
	const fallback = "Failed to perform pipeline action"
	defer guard(s.logger, "volunteers.pipeline_action", &res, fallback)

	if !req.Action.IsValid() {
		return apiclient.Fail[models.PipelineActionResult](fmt.Sprintf("%s: %q", ErrInvalidAction, req.Action))
	}
	req.Notes = SanitizeText(req.Notes)
	req.RejectionReason = SanitizeText(req.RejectionReason)

	resp := s.api.Casa().Post(ctx, idPath("/volunteers/%s/pipeline-action", id), req)
	if !resp.Success {
		return apiclient.Fail[models.PipelineActionResult](resp.ErrorOr(fallback))
	}

	var wire struct {
		OldStatus         string          `json:"old_status"`
		OldStatusCamel    string          `json:"oldStatus"`
		NewStatus         string          `json:"new_status"`
		NewStatusCamel    string          `json:"newStatus"`
		UserCreated       models.FlexBool `json:"user_created"`
		UserCreatedCamel  models.FlexBool `json:"userCreated"`
		Username          string          `json:"username"`
		TemporaryPassword string          `json:"temporary_password"`
		TempPasswordCamel string          `json:"temporaryPassword"`
		WelcomeEmailSent  models.FlexBool `json:"welcome_email_sent"`
		WelcomeEmailCamel models.FlexBool `json:"welcomeEmailSent"`
		Message           string          `json:"message"`
	}
	if err := json.Unmarshal(UnwrapObject(resp.Data), &wire); err != nil {
		return apiclient.Fail[models.PipelineActionResult](fallback)
	}

	result := models.PipelineActionResult{
		OldStatus:         models.VolunteerStatus(firstNonBlank(wire.OldStatus, wire.OldStatusCamel)),
		NewStatus:         models.VolunteerStatus(firstNonBlank(wire.NewStatus, wire.NewStatusCamel)),
		UserCreated:       bool(wire.UserCreated || wire.UserCreatedCamel),
		Username:          wire.Username,
		TemporaryPassword: firstNonBlank(wire.TemporaryPassword, wire.TempPasswordCamel),
		WelcomeEmailSent:  bool(wire.WelcomeEmailSent || wire.WelcomeEmailCamel),
		Message:           wire.Message,
	}
	s.logger.Info("pipeline action applied",
		zap.String("volunteer_id", id),
		zap.String("action", string(req.Action)),
		zap.String("old_status", string(result.OldStatus)),
		zap.String("new_status", string(result.NewStatus)),
		zap.Bool("user_created", result.UserCreated),
	)
	return apiclient.OK(result)
}

// ExportXLSX builds a roster workbook of all volunteers
func (s *VolunteerService) ExportXLSX(ctx context.Context) (res apiclient.Result[Export]) {
	const fallback = "Failed to export volunteers"
	defer guard(s.logger, "volunteers.export", &res, fallback)

	volunteers := s.GetVolunteers(ctx, VolunteerFilters{PageQuery: PageQuery{PerPage: exportPageSize}})
	if !volunteers.Success {
		return apiclient.Fail[Export](volunteers.Error)
	}

	headers := []string{"ID", "First Name", "Last Name", "Email", "Phone", "Stage", "Background Check", "Training", "Cases Assigned"}
	rows := make([][]interface{}, 0, len(volunteers.Data))
	for _, v := range volunteers.Data {
		rows = append(rows, []interface{}{
			v.ID, v.FirstName, v.LastName, v.Email, v.Phone, v.VolunteerStatus.Label(),
			v.BackgroundCheckStatus, v.TrainingStatus, v.CasesAssigned,
		})
	}

	content, err := BuildWorkbook("Volunteers", headers, rows)
	if err != nil {
		s.logger.Error("failed to build volunteer workbook", zap.Error(err))
		return apiclient.Fail[Export](fallback)
	}
	return apiclient.OK(Export{
		FileName:    ExportFileName("volunteers", FormatXLSX, s.now()),
		ContentType: ContentTypeXLSX,
		Content:     content,
	})
}
