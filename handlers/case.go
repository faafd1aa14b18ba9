package handlers

import (
	"net/http"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListCasesHandler lists cases with status, priority, volunteer and paging filters
func ListCasesHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	filters := services.CaseFilters{
		PageQuery:   pageQuery(c),
		Status:      c.QueryParam("status"),
		VolunteerID: c.QueryParam("volunteer_id"),
		Priority:    c.QueryParam("priority"),
	}
	return respond(c, suite.Cases.GetCases(c.Request().Context(), filters), http.StatusOK)
}

// GetCaseHandler returns one case by id
func GetCaseHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Cases.GetCase(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// GetCaseByNumberHandler looks a case up by its case number
func GetCaseByNumberHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Cases.GetCaseByNumber(c.Request().Context(), c.Param("number")), http.StatusOK)
}

// CreateCaseHandler opens a case and mirrors it to the intake form
func CreateCaseHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	res := suite.Cases.CreateCase(c.Request().Context(), input)
	if res.Success {
		mirrorToForms(c, suite, services.FormCaseIntake, input)
	}
	return respond(c, res, http.StatusCreated)
}

// UpdateCaseHandler updates a case
func UpdateCaseHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Cases.UpdateCase(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}

// DeleteCaseHandler deletes a case
func DeleteCaseHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Cases.DeleteCase(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// AssignVolunteerHandler assigns a volunteer to a case
func AssignVolunteerHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var req struct {
		VolunteerID string `json:"volunteer_id" form:"volunteer_id"`
	}
	if err := c.Bind(&req); err != nil || req.VolunteerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "volunteer_id is required")
	}
	return respond(c, suite.Cases.AssignVolunteer(c.Request().Context(), c.Param("id"), req.VolunteerID), http.StatusOK)
}

// CaseStatsHandler returns the dashboard statistics
func CaseStatsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Cases.GetStats(c.Request().Context()), http.StatusOK)
}

// CaseHearingsHandler merges the hearing list with hearings embedded in the case
func CaseHearingsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Hearings.ForCase(c.Request().Context(), c.Param("id"), c.QueryParam("case_number")), http.StatusOK)
}
