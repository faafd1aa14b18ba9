package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"
	"casa_portal_go/services/formcache"

	"go.uber.org/zap"
)

// Logical forms mirrored into the forms plugin
const (
	FormCaseIntake            = "case_intake"
	FormVolunteerRegistration = "volunteer_registration"
	FormContactLog            = "contact_log"
	FormDocumentUpload        = "document_upload"
	FormCourtHearing          = "court_hearing"
	FormHomeVisitReport       = "home_visit_report"
	FormFeedback              = "feedback"
)

// ErrUnknownForm is returned for form names missing from the table
var ErrUnknownForm = errors.New("unknown form")

// FormDefinition maps abstract field names to plugin field ids for one form
type FormDefinition struct {
	Name   string
	FormID int
	Fields map[string]string
}

// DefaultForms is the shipped field table. Form ids can be overridden from configuration.
var DefaultForms = map[string]FormDefinition{
	FormCaseIntake: {Name: FormCaseIntake, FormID: 1, Fields: map[string]string{
		"case_number":        "1",
		"child_first_name":   "2.3",
		"child_last_name":    "2.6",
		"child_dob":          "3",
		"case_type":          "4",
		"court_jurisdiction": "5",
		"assigned_judge":     "6",
		"referral_source":    "7",
		"priority":           "8",
		"special_needs":      "9",
		"summary":            "10",
	}},
	FormVolunteerRegistration: {Name: FormVolunteerRegistration, FormID: 2, Fields: map[string]string{
		"first_name":               "1.3",
		"last_name":                "1.6",
		"email":                    "2",
		"phone":                    "3",
		"address":                  "4.1",
		"city":                     "4.3",
		"state":                    "4.4",
		"zip_code":                 "4.5",
		"date_of_birth":            "5",
		"availability":             "6",
		"languages":                "7",
		"emergency_contact_name":   "8",
		"emergency_contact_phone":  "9",
		"background_check_consent": "10",
	}},
	FormContactLog: {Name: FormContactLog, FormID: 3, Fields: map[string]string{
		"case_number":        "1",
		"contact_type":       "2",
		"contact_date":       "3",
		"duration_minutes":   "4",
		"participants":       "5",
		"summary":            "6",
		"concerns":           "7",
		"follow_up_required": "8",
	}},
	FormDocumentUpload: {Name: FormDocumentUpload, FormID: 4, Fields: map[string]string{
		"case_number":     "1",
		"document_type":   "2",
		"document_name":   "3",
		"description":     "4",
		"is_confidential": "5",
	}},
	FormCourtHearing: {Name: FormCourtHearing, FormID: 5, Fields: map[string]string{
		"case_number":  "1",
		"hearing_date": "2",
		"hearing_time": "3",
		"hearing_type": "4",
		"court_room":   "5",
		"judge_name":   "6",
		"notes":        "7",
	}},
	FormHomeVisitReport: {Name: FormHomeVisitReport, FormID: 6, Fields: map[string]string{
		"case_number":       "1",
		"visit_date":        "2",
		"attendees":         "3",
		"child_wellbeing":   "4",
		"home_environment":  "5",
		"safety_concerns":   "6",
		"recommendations":   "7",
		"follow_up_actions": "8",
	}},
	FormFeedback: {Name: FormFeedback, FormID: 7, Fields: map[string]string{
		"category": "1",
		"subject":  "2",
		"message":  "3",
		"rating":   "4",
		"page_url": "5",
	}},
}

// FormSubmission is the plugin's answer to a submission
type FormSubmission struct {
	IsValid             bool            `json:"is_valid"`
	EntryID             models.FlexInt  `json:"entry_id,omitempty"`
	ConfirmationMessage string          `json:"confirmation_message,omitempty"`
	ValidationMessages  json.RawMessage `json:"validation_messages,omitempty"`
}

// FormService submits portal records into the forms plugin
type FormService struct {
	BaseService
	cache formcache.Cache
	forms map[string]FormDefinition
}

// NewFormService builds the service; formIDs override the shipped form ids by name
func NewFormService(api *apiclient.Client, logger *zap.Logger, cache formcache.Cache, formIDs map[string]int) *FormService {
	if cache == nil {
		cache = formcache.NewMemoryCache(0)
	}
	forms := make(map[string]FormDefinition, len(DefaultForms))
	for name, def := range DefaultForms {
		if id, ok := formIDs[name]; ok && id > 0 {
			def.FormID = id
		}
		forms[name] = def
	}
	return &FormService{BaseService: NewBaseService(api, logger), cache: cache, forms: forms}
}

// Definition returns the field table for a logical form
func (s *FormService) Definition(name string) (FormDefinition, bool) {
	def, ok := s.forms[name]
	return def, ok
}

// FormNames lists the configured logical forms in name order
func (s *FormService) FormNames() []string {
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFormMeta returns field metadata, fetching it at most once per form id while cached
func (s *FormService) GetFormMeta(ctx context.Context, formID int) (*models.FormMeta, error) {
	if meta, ok := s.cache.Get(ctx, formID); ok {
		return meta, nil
	}

	resp := s.api.Forms().Get(ctx, fmt.Sprintf("/forms/%d", formID))
	if !resp.Success {
		return nil, fmt.Errorf("failed to fetch form %d: %s", formID, resp.Error)
	}
	meta, err := DecodeObject[models.FormMeta](resp.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode form %d: %w", formID, err)
	}

	if err := s.cache.Set(ctx, formID, &meta); err != nil {
		s.logger.Warn("failed to cache form metadata", zap.Int("form_id", formID), zap.Error(err))
	}
	return &meta, nil
}

// BuildPayload maps abstract values onto plugin input keys, coercing each value to the
// shape its field expects. Keys missing from the table are dropped.
func (s *FormService) BuildPayload(ctx context.Context, name string, values map[string]interface{}) (int, map[string]interface{}, error) {
	def, ok := s.forms[name]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrUnknownForm, name)
	}

	arrayFields := map[string]bool{}
	meta, err := s.GetFormMeta(ctx, def.FormID)
	if err != nil {
		s.logger.Warn("form metadata unavailable, submitting scalar values", zap.String("form", name), zap.Error(err))
	} else {
		arrayFields = meta.ArrayFields()
	}

	payload := make(map[string]interface{}, len(values))
	for key, value := range values {
		fieldID, ok := def.Fields[key]
		if !ok {
			continue
		}
		payload[PluginInputKey(fieldID)] = CoerceFieldValue(value, arrayFields[fieldID])
	}
	return def.FormID, payload, nil
}

// SubmitForm posts a logical form to the plugin
func (s *FormService) SubmitForm(ctx context.Context, name string, values map[string]interface{}) (res apiclient.Result[FormSubmission]) {
	const fallback = "Failed to submit form"
	defer guard(s.logger, "forms.submit", &res, fallback)

	formID, payload, err := s.BuildPayload(ctx, name, values)
	if err != nil {
		return apiclient.Fail[FormSubmission](err.Error())
	}

	resp := s.api.Forms().Post(ctx, fmt.Sprintf("/forms/%d/submissions", formID), payload)
	if !resp.Success {
		return apiclient.Fail[FormSubmission](resp.ErrorOr(fallback))
	}

	var submission FormSubmission
	if err := json.Unmarshal(UnwrapObject(resp.Data), &submission); err != nil {
		return apiclient.Fail[FormSubmission](fallback)
	}
	if !submission.IsValid {
		return apiclient.Result[FormSubmission]{Success: false, Data: submission, Error: "Form validation failed"}
	}
	return apiclient.OK(submission)
}

// SubmitFormWithFallback never fails: any error or panic is logged and reported as
// success with Fallback set, so the primary backend write is never blocked by the plugin.
func (s *FormService) SubmitFormWithFallback(ctx context.Context, name string, values map[string]interface{}) (res apiclient.Result[FormSubmission]) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("form submission panicked, continuing", zap.String("form", name), zap.Any("panic", r))
			res = apiclient.Result[FormSubmission]{Success: true, Fallback: true}
		}
	}()

	res = s.SubmitForm(ctx, name, values)
	if !res.Success {
		s.logger.Warn("form submission failed, continuing", zap.String("form", name), zap.String("error", res.Error))
		return apiclient.Result[FormSubmission]{Success: true, Fallback: true}
	}
	return res
}

// PluginInputKey converts a field id such as "2.3" to "input_2_3"
func PluginInputKey(fieldID string) string {
	return "input_" + strings.ReplaceAll(fieldID, ".", "_")
}

// CoerceFieldValue shapes a value for an array or scalar plugin field
func CoerceFieldValue(value interface{}, isArray bool) interface{} {
	if isArray {
		return toStringSlice(value)
	}
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		return strings.Join(toStringSlice(v), ", ")
	default:
		return scalarString(value)
	}
}

func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, scalarString(item))
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	case bool:
		if v {
			return []string{"1"}
		}
		return []string{}
	default:
		return []string{scalarString(v)}
	}
}

func scalarString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
