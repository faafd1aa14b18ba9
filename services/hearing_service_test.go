package services

import (
	"context"
	"net/http"
	"testing"

	"casa_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHearingService_ForCase(t *testing.T) {
	ctx := context.Background()

	newService := func(baseURL string) *HearingService {
		api := newTestClient(baseURL, nil)
		return NewHearingService(api, nil, NewCaseService(api, nil))
	}

	t.Run("Merges both sources and drops duplicates", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodGet, "/casa/v1/court-hearings", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "C-1", r.URL.Query().Get("case_number"))
			writeJSON(w, http.StatusOK, `{"data":{"hearings":[
				{"id":1,"case_number":"C-1","hearing_date":"2024-06-01"},
				{"id":2,"case_number":"C-2","hearing_date":"2024-06-02"}
			]}}`)
		})
		backend.respond(http.MethodGet, "/casa/v1/cases/10", http.StatusOK, `{"id":10,"case_number":"C-1","hearings":[
			{"id":1,"hearing_date":"2024-06-01"},
			{"id":3,"hearing_date":"2024-07-01"}
		]}`)

		res := newService(backend.URL).ForCase(ctx, "10", "C-1")
		require.True(t, res.Success, res.Error)
		require.Len(t, res.Data, 2)
		assert.Equal(t, "1", res.Data[0].ID.String())
		assert.Equal(t, "3", res.Data[1].ID.String())
		assert.Equal(t, models.FlexString("C-1"), res.Data[1].CaseNumber)
	})

	t.Run("Embedded hearings survive a failing list", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/court-hearings", http.StatusInternalServerError, `{}`)
		backend.respond(http.MethodGet, "/casa/v1/cases/10", http.StatusOK, `{"id":10,"case_number":"C-1","hearings":[{"id":3}]}`)

		res := newService(backend.URL).ForCase(ctx, "10", "C-1")
		require.True(t, res.Success, res.Error)
		assert.Len(t, res.Data, 1)
	})

	t.Run("Both sources failing", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/court-hearings", http.StatusBadGateway, `{"message":"Upstream down"}`)
		backend.respond(http.MethodGet, "/casa/v1/cases/10", http.StatusBadGateway, `{}`)

		res := newService(backend.URL).ForCase(ctx, "10", "C-1")
		assert.False(t, res.Success)
		assert.Equal(t, "Upstream down", res.Error)
	})

	t.Run("Case number comes from the case record", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodGet, "/casa/v1/court-hearings", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2024001", r.URL.Query().Get("case_number"))
			writeJSON(w, http.StatusOK, `[{"id":1,"case_number":2024001},{"id":2,"case_number":"C-9"}]`)
		})
		backend.respond(http.MethodGet, "/casa/v1/cases/10", http.StatusOK, `{"id":10,"case_number":2024001}`)

		res := newService(backend.URL).ForCase(ctx, "10", "")
		require.True(t, res.Success, res.Error)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "1", res.Data[0].ID.String())
	})

	t.Run("Unknown case number skips the list", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/court-hearings", http.StatusOK, `[{"id":1,"case_number":"C-1"}]`)
		backend.respond(http.MethodGet, "/casa/v1/cases/10", http.StatusNotFound, `{"message":"Case not found"}`)

		res := newService(backend.URL).ForCase(ctx, "10", "")
		assert.False(t, res.Success)
		assert.Equal(t, "Case not found", res.Error)
		assert.Zero(t, backend.count(http.MethodGet, "/casa/v1/court-hearings"))
	})

	t.Run("No case id uses the list only", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodGet, "/casa/v1/court-hearings", http.StatusOK, `[]`)

		res := newService(backend.URL).ForCase(ctx, "", "C-1")
		require.True(t, res.Success)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
	})
}

func TestHearingService_Mutations(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respond(http.MethodPost, "/casa/v1/court-hearings", http.StatusCreated, `{"success":true,"data":{"id":5,"case_number":"C-1"}}`)
	backend.respond(http.MethodPut, "/casa/v1/court-hearings/5", http.StatusOK, `{"id":5,"status":"postponed"}`)
	backend.respond(http.MethodDelete, "/casa/v1/court-hearings/5", http.StatusOK, `{"deleted":true}`)

	svc := NewHearingService(newTestClient(backend.URL, nil), nil, nil)
	ctx := context.Background()

	created := svc.CreateHearing(ctx, map[string]interface{}{"case_number": "C-1"})
	require.True(t, created.Success, created.Error)
	assert.Equal(t, "5", created.Data.ID.String())

	updated := svc.UpdateHearing(ctx, "5", map[string]interface{}{"status": "postponed"})
	require.True(t, updated.Success)
	assert.Equal(t, models.FlexString("postponed"), updated.Data.Status)

	assert.True(t, svc.DeleteHearing(ctx, "5").Success)
}
