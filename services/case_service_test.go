package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"casa_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseService_GetCases(t *testing.T) {
	ctx := context.Background()

	t.Run("Cases nested under data", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusOK,
			`{"success": true, "data": {"cases": [{"id": "1", "case_number": "C-001", "child_first_name": "Ava"}]}}`)

		res := NewCaseService(newTestClient(backend.URL, nil), nil).GetCases(ctx, CaseFilters{})
		require.True(t, res.Success, res.Error)
		require.Len(t, res.Data, 1)
		assert.Equal(t, models.FlexString("C-001"), res.Data[0].CaseNumber)
	})

	t.Run("Filters become query parameters", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodGet, "/casa/v1/cases", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "open", q.Get("status"))
			assert.Equal(t, "ava", q.Get("search"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "7", q.Get("volunteer_id"))
			assert.Empty(t, q.Get("priority"))
			writeJSON(w, http.StatusOK, `[]`)
		})

		filters := CaseFilters{PageQuery: PageQuery{Page: 2, Search: "ava"}, Status: "open", VolunteerID: "7"}
		res := NewCaseService(newTestClient(backend.URL, nil), nil).GetCases(ctx, filters)
		assert.True(t, res.Success)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
	})

	t.Run("Unknown shape yields empty list", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusOK, `{"success":true,"data":{"message":"nothing"}}`)

		res := NewCaseService(newTestClient(backend.URL, nil), nil).GetCases(ctx, CaseFilters{})
		assert.True(t, res.Success)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
	})

	t.Run("Backend error message is surfaced", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusForbidden, `{"message":"Sorry, you are not allowed to do that."}`)

		res := NewCaseService(newTestClient(backend.URL, nil), nil).GetCases(ctx, CaseFilters{})
		assert.False(t, res.Success)
		assert.Equal(t, "Sorry, you are not allowed to do that.", res.Error)
	})
}

func TestCaseService_GetCaseByNumber(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusOK,
		`{"data":[{"id":1,"case_number":"C-0011"},{"id":2,"case_number":"C-001"}]}`)
	svc := NewCaseService(newTestClient(backend.URL, nil), nil)

	res := svc.GetCaseByNumber(context.Background(), "C-001")
	require.True(t, res.Success)
	assert.Equal(t, "2", res.Data.ID.String())

	missing := svc.GetCaseByNumber(context.Background(), "C-999")
	assert.False(t, missing.Success)
	assert.Equal(t, "Case not found", missing.Error)
}

func TestCaseService_Mutations(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodPost, "/casa/v1/cases", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "C-100", got["case_number"])
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"data":{"id":100,"case_number":"C-100"}}}`)
	})
	backend.respond(http.MethodPut, "/casa/v1/cases/100", http.StatusOK, `{"success":true,"data":{"id":100,"case_number":"C-100","status":"closed"}}`)
	backend.respond(http.MethodDelete, "/casa/v1/cases/100", http.StatusOK, `{"success":true,"deleted":true}`)
	backend.handle(http.MethodPost, "/casa/v1/cases/100/assign", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"volunteer_id":"7"}`, string(body))
		writeJSON(w, http.StatusOK, `{"id":100,"case_number":"C-100","assigned_volunteer_id":7}`)
	})
	backend.respond(http.MethodGet, "/casa/v1/dashboard/stats", http.StatusOK, `{"data":{"total_cases":"12","active_cases":9}}`)

	ctx := context.Background()
	svc := NewCaseService(newTestClient(backend.URL, nil), nil)

	created := svc.CreateCase(ctx, map[string]interface{}{"case_number": "C-100"})
	require.True(t, created.Success, created.Error)
	assert.Equal(t, "100", created.Data.ID.String())

	updated := svc.UpdateCase(ctx, "100", map[string]interface{}{"status": "closed"})
	require.True(t, updated.Success)
	assert.True(t, updated.Data.IsClosed())

	assert.True(t, svc.DeleteCase(ctx, "100").Success)

	assigned := svc.AssignVolunteer(ctx, "100", "7")
	require.True(t, assigned.Success)
	assert.Equal(t, "7", assigned.Data.AssignedVolunteerID.String())

	stats := svc.GetStats(ctx)
	require.True(t, stats.Success)
	assert.Equal(t, 12, int(stats.Data.TotalCases))
	assert.Equal(t, 9, int(stats.Data.ActiveCases))
}
