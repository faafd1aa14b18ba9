package pages

import (
	"context"
	"strconv"
	"strings"

	"casa_portal_go/models"

	"github.com/a-h/templ"
)

// DashboardView holds the data for the dashboard
type DashboardView struct {
	User         *models.User
	Organization *models.Organization
	Stats        models.CaseStats
	StatsError   string
	RecentCases  []models.Case
	CSRFToken    string
}

// Dashboard renders the signed-in landing page. The pipeline board loads lazily over HTMX.
func Dashboard(view DashboardView) templ.Component {
	return page("Dashboard | CASA Portal", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<header class="topbar">`)
		if view.Organization != nil {
			b.WriteString(`<span class="org">` + esc(view.Organization.Name) + `</span>`)
		}
		if view.User != nil {
			b.WriteString(`<span class="user">` + esc(view.User.FullName()) + `</span>`)
		}
		b.WriteString(`<form method="post" action="/logout"><input type="hidden" name="_csrf" value="` + esc(view.CSRFToken) + `"><button type="submit">Sign out</button></form></header>`)

		b.WriteString(`<main><section class="stats">`)
		if view.StatsError != "" {
			b.WriteString(`<div class="alert alert-error" role="alert"><span>` + esc(view.StatsError) + `</span></div>`)
		} else {
			writeStat(b, "Active cases", int(view.Stats.ActiveCases))
			writeStat(b, "Unassigned cases", int(view.Stats.UnassignedCases))
			writeStat(b, "Active volunteers", int(view.Stats.ActiveVolunteers))
			writeStat(b, "Upcoming hearings", int(view.Stats.UpcomingHearings))
		}
		b.WriteString(`</section>`)

		if len(view.RecentCases) > 0 {
			b.WriteString(`<section class="recent-cases"><h2>Recent cases</h2><ul>`)
			for _, c := range view.RecentCases {
				b.WriteString(`<li><strong>` + esc(c.CaseNumber.String()) + `</strong> ` + esc(c.ChildName()) + ` <span class="status">` + esc(c.Status.String()) + `</span></li>`)
			}
			b.WriteString(`</ul></section>`)
		}

		b.WriteString(`<section id="pipeline" hx-get="/htmx/volunteers/pipeline" hx-trigger="load"></section></main>`)
	})
}

func writeStat(b *strings.Builder, label string, value int) {
	b.WriteString(`<div class="stat"><span class="label">` + esc(label) + `</span><span class="value">` + strconv.Itoa(value) + `</span></div>`)
}
