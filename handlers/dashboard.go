package handlers

import (
	"casa_portal_go/middleware"
	"casa_portal_go/services"
	"casa_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// recentCaseCount is how many cases the dashboard lists
const recentCaseCount = 5

// DashboardHandler renders the signed-in landing page
func DashboardHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	view := pages.DashboardView{
		User:         middleware.GetCurrentUser(c),
		Organization: middleware.GetCurrentOrganization(c),
		CSRFToken:    middleware.GetCSRFToken(c),
	}

	stats := suite.Cases.GetStats(ctx)
	if stats.Success {
		view.Stats = stats.Data
	} else {
		view.StatsError = stats.Error
	}

	if services.HasPermission(view.User, services.PermViewCases) {
		filters := services.CaseFilters{PageQuery: services.PageQuery{Page: 1, PerPage: recentCaseCount}}
		if cases := suite.Cases.GetCases(ctx, filters); cases.Success {
			view.RecentCases = cases.Data
		}
	}

	if middleware.LoginRedirected(c) {
		return middleware.Unauthenticated(c)
	}
	return render(c, pages.Dashboard(view))
}
