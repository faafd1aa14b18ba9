package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"casa_portal_go/middleware"
	"casa_portal_go/models"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestLogin(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.NonceKey, "n0nce")
	html := render(t, ctx, Login(LoginView{
		CSRFToken:        "tok",
		Email:            `a"b@example.com`,
		OrganizationSlug: "river",
		Error:            "Invalid username or password",
	}))

	assert.Contains(t, html, `<title>Sign in | CASA Portal</title>`)
	assert.Contains(t, html, `name="_csrf" value="tok"`)
	assert.Contains(t, html, `nonce="n0nce"`)
	assert.Contains(t, html, `value="a&#34;b@example.com"`)
	assert.Contains(t, html, `value="river"`)
	assert.Contains(t, html, "Invalid username or password")
}

func TestPipelineBoard(t *testing.T) {
	board := models.NewPipelineBoard()
	board[models.VolunteerStatusApplied] = []models.Volunteer{
		{ID: "3", FirstName: "Ana", LastName: "<Ruiz>", VolunteerStatus: models.VolunteerStatusApplied, CasesAssigned: 1},
	}

	html := render(t, context.Background(), PipelineBoard(board, "tok"))

	assert.Equal(t, 5, strings.Count(html, `class="pipeline-column"`))
	applied := strings.Index(html, `data-stage="applied"`)
	rejected := strings.Index(html, `data-stage="rejected"`)
	assert.True(t, applied >= 0 && applied < rejected)
	assert.Contains(t, html, "Ana &lt;Ruiz&gt;")
	assert.Contains(t, html, `/htmx/volunteers/3/pipeline-action`)
	assert.Contains(t, html, "Start Background Check")
	assert.NotContains(t, html, "Reopen")
}

func TestDashboard(t *testing.T) {
	view := DashboardView{
		User:         &models.User{FirstName: "Jane", LastName: "Doe"},
		Organization: &models.Organization{Name: "River County CASA"},
		Stats:        models.CaseStats{ActiveCases: 4, UpcomingHearings: 2},
		RecentCases:  []models.Case{{CaseNumber: "C-001", ChildFirstName: "Sam", Status: "active"}},
	}
	html := render(t, context.Background(), Dashboard(view))

	assert.Contains(t, html, "River County CASA")
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, `<span class="label">Active cases</span><span class="value">4</span>`)
	assert.Contains(t, html, "C-001")
	assert.Contains(t, html, `hx-get="/htmx/volunteers/pipeline"`)

	view.StatsError = "Failed to load statistics"
	html = render(t, context.Background(), Dashboard(view))
	assert.Contains(t, html, "Failed to load statistics")
	assert.NotContains(t, html, "Active cases")
}
