package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"casa_portal_go/models"
	"casa_portal_go/services/formcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingCache struct{}

func (panickingCache) Get(ctx context.Context, formID int) (*models.FormMeta, bool) {
	panic("cache exploded")
}
func (panickingCache) Set(ctx context.Context, formID int, meta *models.FormMeta) error { return nil }
func (panickingCache) Invalidate(ctx context.Context, formID int) error                 { return nil }

const contactLogMeta = `{"id":3,"title":"Contact Log","fields":[
	{"id":1,"type":"text"},
	{"id":5,"type":"checkbox"},
	{"id":8,"type":"select"}
]}`

func TestCoerceFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		isArray bool
		expect  interface{}
	}{
		{"Scalar string", "abc", false, "abc"},
		{"Scalar true", true, false, "1"},
		{"Scalar false", false, false, ""},
		{"Scalar int", 42, false, "42"},
		{"Scalar float", 1.5, false, "1.5"},
		{"Scalar nil", nil, false, ""},
		{"List joined for scalar field", []interface{}{"a", "b"}, false, "a, b"},
		{"String wrapped for array field", "a", true, []string{"a"}},
		{"Empty string for array field", "", true, []string{}},
		{"List for array field", []interface{}{"a", 2}, true, []string{"a", "2"}},
		{"Nil for array field", nil, true, []string{}},
		{"True for array field", true, true, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, CoerceFieldValue(tt.value, tt.isArray))
		})
	}
}

func TestPluginInputKey(t *testing.T) {
	assert.Equal(t, "input_2_3", PluginInputKey("2.3"))
	assert.Equal(t, "input_7", PluginInputKey("7"))
}

func TestFormService_SubmitForm(t *testing.T) {
	ctx := context.Background()

	t.Run("Maps fields, drops unknown keys and uses basic auth", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/gf/v2/forms/3", http.StatusOK, contactLogMeta)
		backend.handle(http.MethodPost, "/gf/v2/forms/3/submissions", func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "ck_test", user)
			assert.Equal(t, "cs_test", pass)

			body, _ := io.ReadAll(r.Body)
			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, "C-1", got["input_1"])
			assert.Equal(t, []interface{}{"Mother"}, got["input_5"])
			assert.Equal(t, "1", got["input_8"])
			assert.NotContains(t, got, "not_a_field")
			assert.Len(t, got, 3)
			writeJSON(w, http.StatusOK, `{"is_valid":true,"entry_id":55,"confirmation_message":"Thanks"}`)
		})

		svc := NewFormService(newTestClient(backend.URL, nil), nil, nil, nil)
		res := svc.SubmitForm(ctx, FormContactLog, map[string]interface{}{
			"case_number":        "C-1",
			"participants":       "Mother",
			"follow_up_required": true,
			"not_a_field":        "dropped",
		})
		require.True(t, res.Success, res.Error)
		assert.Equal(t, models.FlexInt(55), res.Data.EntryID)
		assert.False(t, res.Fallback)
	})

	t.Run("Metadata is fetched once per form", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/gf/v2/forms/3", http.StatusOK, contactLogMeta)
		backend.respond(http.MethodPost, "/gf/v2/forms/3/submissions", http.StatusOK, `{"is_valid":true}`)

		svc := NewFormService(newTestClient(backend.URL, nil), nil, formcache.NewMemoryCache(0), nil)
		for i := 0; i < 3; i++ {
			require.True(t, svc.SubmitForm(ctx, FormContactLog, map[string]interface{}{"case_number": "C-1"}).Success)
		}
		assert.Equal(t, 1, backend.count(http.MethodGet, "/gf/v2/forms/3"))
		assert.Equal(t, 3, backend.count(http.MethodPost, "/gf/v2/forms/3/submissions"))
	})

	t.Run("Invalid submission", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/gf/v2/forms/3", http.StatusOK, contactLogMeta)
		backend.respond(http.MethodPost, "/gf/v2/forms/3/submissions", http.StatusOK,
			`{"is_valid":false,"validation_messages":{"1":"This field is required."}}`)

		svc := NewFormService(newTestClient(backend.URL, nil), nil, nil, nil)
		res := svc.SubmitForm(ctx, FormContactLog, map[string]interface{}{})
		assert.False(t, res.Success)
		assert.Equal(t, "Form validation failed", res.Error)
		assert.JSONEq(t, `{"1":"This field is required."}`, string(res.Data.ValidationMessages))
	})

	t.Run("Unknown form", func(t *testing.T) {
		svc := NewFormService(newTestClient("http://127.0.0.1:1", nil), nil, nil, nil)
		res := svc.SubmitForm(ctx, "nope", nil)
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "unknown form")
	})

	t.Run("Configured form id overrides the default", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/gf/v2/forms/42", http.StatusOK, `{"id":42,"fields":[]}`)
		backend.respond(http.MethodPost, "/gf/v2/forms/42/submissions", http.StatusOK, `{"is_valid":true}`)

		svc := NewFormService(newTestClient(backend.URL, nil), nil, nil, map[string]int{FormFeedback: 42})
		res := svc.SubmitForm(ctx, FormFeedback, map[string]interface{}{"subject": "Hi"})
		require.True(t, res.Success, res.Error)
		assert.Equal(t, 1, backend.count(http.MethodPost, "/gf/v2/forms/42/submissions"))

		def, ok := svc.Definition(FormFeedback)
		require.True(t, ok)
		assert.Equal(t, 42, def.FormID)
		assert.Equal(t, 7, DefaultForms[FormFeedback].FormID)
	})
}

func TestFormService_SubmitFormWithFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("Plugin failure still reports success", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/gf/v2/forms/3", http.StatusOK, contactLogMeta)
		backend.respond(http.MethodPost, "/gf/v2/forms/3/submissions", http.StatusInternalServerError, `{"message":"boom"}`)

		svc := NewFormService(newTestClient(backend.URL, nil), nil, nil, nil)
		res := svc.SubmitFormWithFallback(ctx, FormContactLog, map[string]interface{}{"case_number": "C-1"})
		assert.True(t, res.Success)
		assert.True(t, res.Fallback)
		assert.Empty(t, res.Error)
	})

	t.Run("Panicking cache still reports success", func(t *testing.T) {
		backend := newFakeBackend(t)
		svc := NewFormService(newTestClient(backend.URL, nil), nil, panickingCache{}, nil)
		res := svc.SubmitFormWithFallback(ctx, FormContactLog, map[string]interface{}{"case_number": "C-1"})
		assert.True(t, res.Success)
		assert.True(t, res.Fallback)
	})

	t.Run("Success passes through", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/gf/v2/forms/3", http.StatusOK, contactLogMeta)
		backend.respond(http.MethodPost, "/gf/v2/forms/3/submissions", http.StatusOK, `{"is_valid":true,"entry_id":"9"}`)

		svc := NewFormService(newTestClient(backend.URL, nil), nil, nil, nil)
		res := svc.SubmitFormWithFallback(ctx, FormContactLog, map[string]interface{}{"case_number": "C-1"})
		assert.True(t, res.Success)
		assert.False(t, res.Fallback)
		assert.Equal(t, models.FlexInt(9), res.Data.EntryID)
	})
}
