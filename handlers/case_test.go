package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"casa_portal_go/middleware"
	"casa_portal_go/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signedIn = map[string]string{
	session.KeyAuthToken: "tok-1",
	session.KeyUserData:  `{"id":"12","roles":["casa_supervisor"]}`,
	session.KeyTenantID:  "4",
}

func TestListCasesHandler(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.handle(http.MethodGet, "/casa/v1/cases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"cases":[{"id":1,"case_number":"C-001"},{"id":"2","case_number":"C-002"}]}}`))
	})

	c, rec := env.context(http.MethodGet, "/api/cases?status=active&page=2", nil)
	require.NoError(t, ListCasesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			ID         string `json:"id"`
			CaseNumber string `json:"case_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "1", body.Data[0].ID)
	assert.Equal(t, "C-002", body.Data[1].CaseNumber)
}

func TestRespondFailures(t *testing.T) {
	t.Run("Backend error becomes 400 with the message", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		env.backend.respond(http.MethodGet, "/casa/v1/cases/9", http.StatusNotFound, `{"message":"Case not found"}`)

		c, rec := env.context(http.MethodGet, "/api/cases/9", nil)
		c.SetParamNames("id")
		c.SetParamValues("9")

		require.NoError(t, GetCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Case not found")
	})

	t.Run("Backend 401 on an API route", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		env.backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusUnauthorized, `{"message":"Expired token"}`)

		c, _ := env.context(http.MethodGet, "/api/cases", nil)
		err := ListCasesHandler(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.True(t, middleware.LoginRedirected(c))
		assert.Empty(t, env.store.Get(session.KeyAuthToken))
		assert.Empty(t, env.store.Get(session.KeyTenantID))
	})

	t.Run("Backend 401 on a page redirects to login", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		env.backend.respond(http.MethodGet, "/casa/v1/dashboard/stats", http.StatusUnauthorized, `{}`)
		env.backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusUnauthorized, `{}`)

		c, rec := env.context(http.MethodGet, "/dashboard", nil)
		require.NoError(t, DashboardHandler(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestCreateCaseHandler(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.handle(http.MethodPost, "/casa/v1/cases", func(w http.ResponseWriter, r *http.Request) {
		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "C-010", got["case_number"])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"id":10,"case_number":"C-010"}}`))
	})
	env.backend.respond(http.MethodGet, "/gf/v2/forms/1", http.StatusOK, `{"id":1,"title":"Case Intake","fields":[]}`)
	env.backend.handle(http.MethodPost, "/gf/v2/forms/1/submissions", func(w http.ResponseWriter, r *http.Request) {
		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "C-010", got["input_1"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"is_valid":true,"entry_id":3}`))
	})

	c, rec := env.context(http.MethodPost, "/api/cases", strings.NewReader(`{"case_number":"C-010","child_first_name":"Sam"}`))
	jsonRequest(c)

	require.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"case_number":"C-010"`)
	assert.Equal(t, 1, env.backend.count(http.MethodPost, "/gf/v2/forms/1/submissions"))
}

func TestCreateCaseHandler_FormsOutageDoesNotFail(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.respond(http.MethodPost, "/casa/v1/cases", http.StatusCreated, `{"id":11,"case_number":"C-011"}`)
	env.backend.respond(http.MethodPost, "/gf/v2/forms/1/submissions", http.StatusInternalServerError, `{"message":"plugin down"}`)

	c, rec := env.context(http.MethodPost, "/api/cases", strings.NewReader(`{"case_number":"C-011"}`))
	jsonRequest(c)

	require.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateCaseHandler_FormsUnauthorizedKeepsSession(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.respond(http.MethodPost, "/casa/v1/cases", http.StatusCreated, `{"id":12,"case_number":"C-012"}`)
	env.backend.respond(http.MethodGet, "/gf/v2/forms/1", http.StatusUnauthorized, `{"message":"Not authorized"}`)
	env.backend.respond(http.MethodPost, "/gf/v2/forms/1/submissions", http.StatusUnauthorized, `{"message":"Not authorized"}`)

	c, rec := env.context(http.MethodPost, "/api/cases", strings.NewReader(`{"case_number":"C-012"}`))
	jsonRequest(c)

	require.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"case_number":"C-012"`)
	assert.False(t, middleware.LoginRedirected(c))
	assert.Equal(t, "tok-1", env.store.Get(session.KeyAuthToken))
	assert.Equal(t, "4", env.store.Get(session.KeyTenantID))
}

func TestCreateCaseHandler_EmptyBody(t *testing.T) {
	env := newTestEnv(t, signedIn)
	c, _ := env.context(http.MethodPost, "/api/cases", strings.NewReader(`{}`))
	jsonRequest(c)

	err := CreateCaseHandler(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCaseHearingsHandler(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.respond(http.MethodGet, "/casa/v1/court-hearings", http.StatusOK,
		`[{"id":1,"case_number":"C-001","hearing_date":"2024-06-01"},{"id":2,"case_number":"C-999"}]`)
	env.backend.respond(http.MethodGet, "/casa/v1/cases/5", http.StatusOK,
		`{"id":5,"case_number":"C-001","hearings":[{"id":1,"case_number":"C-001"},{"id":3,"hearing_date":"2024-07-01"}]}`)

	c, rec := env.context(http.MethodGet, "/api/cases/5/hearings?case_number=C-001", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, CaseHearingsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "1", body.Data[0].ID)
	assert.Equal(t, "3", body.Data[1].ID)
}

func TestCaseHearingsHandler_WithoutCaseNumberQuery(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.handle(http.MethodGet, "/casa/v1/court-hearings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "C-001", r.URL.Query().Get("case_number"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"case_number":"C-001","hearing_date":"2024-06-01"},{"id":2,"case_number":"C-999"}]`))
	})
	env.backend.respond(http.MethodGet, "/casa/v1/cases/5", http.StatusOK, `{"id":5,"case_number":"C-001"}`)

	c, rec := env.context(http.MethodGet, "/api/cases/5/hearings", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, CaseHearingsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			ID         string `json:"id"`
			CaseNumber string `json:"case_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "1", body.Data[0].ID)
	assert.Equal(t, "C-001", body.Data[0].CaseNumber)
	assert.Equal(t, 1, env.backend.count(http.MethodGet, "/casa/v1/court-hearings"))
}

func TestListCasesHandler_EmptyList(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.respond(http.MethodGet, "/casa/v1/cases", http.StatusOK, `{"success":true,"data":{"cases":[]}}`)

	c, rec := env.context(http.MethodGet, "/api/cases", nil)
	require.NoError(t, ListCasesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}
