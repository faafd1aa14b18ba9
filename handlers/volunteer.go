package handlers

import (
	"net/http"
	"strings"

	"casa_portal_go/middleware"
	"casa_portal_go/models"
	"casa_portal_go/services"
	"casa_portal_go/templates/components"
	"casa_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// ListVolunteersHandler lists volunteers in their camelCase view
func ListVolunteersHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	filters := services.VolunteerFilters{PageQuery: pageQuery(c), Status: c.QueryParam("status")}
	return respond(c, suite.Volunteers.GetVolunteers(c.Request().Context(), filters), http.StatusOK)
}

// GetVolunteerHandler returns one volunteer
func GetVolunteerHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Volunteers.GetVolunteer(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// CreateVolunteerHandler registers a volunteer and mirrors the registration form
func CreateVolunteerHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	res := suite.Volunteers.CreateVolunteer(c.Request().Context(), input)
	if res.Success {
		mirrorToForms(c, suite, services.FormVolunteerRegistration, input)
	}
	return respond(c, res, http.StatusCreated)
}

// UpdateVolunteerHandler updates a volunteer
func UpdateVolunteerHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Volunteers.UpdateVolunteer(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}

// DeleteVolunteerHandler deletes a volunteer
func DeleteVolunteerHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Volunteers.DeleteVolunteer(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// VolunteerPipelineHandler returns the five-stage pipeline board as JSON
func VolunteerPipelineHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Volunteers.GetVolunteersByPipeline(c.Request().Context()), http.StatusOK)
}

func bindPipelineAction(c echo.Context) (models.PipelineActionRequest, error) {
	var req models.PipelineActionRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.Action = models.PipelineAction(strings.TrimSpace(string(req.Action)))
	return req, nil
}

// PipelineActionHandler moves a volunteer between pipeline stages
func PipelineActionHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	req, err := bindPipelineAction(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Volunteers.PipelineAction(c.Request().Context(), c.Param("id"), req), http.StatusOK)
}

// ExportVolunteersHandler downloads the volunteer roster as XLSX
func ExportVolunteersHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return sendExport(c, suite, suite.Volunteers.ExportXLSX(c.Request().Context()))
}

// PipelineBoardFragmentHandler renders the Kanban board for HTMX
func PipelineBoardFragmentHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	res := suite.Volunteers.GetVolunteersByPipeline(c.Request().Context())
	if middleware.LoginRedirected(c) {
		return middleware.Unauthenticated(c)
	}
	if !res.Success {
		return render(c, components.Alert(components.AlertError, res.Error))
	}
	return render(c, pages.PipelineBoard(res.Data, middleware.GetCSRFToken(c)))
}

// PipelineActionFragmentHandler applies an action and re-renders the board.
// Failures are inserted above the board instead of replacing it.
func PipelineActionFragmentHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	req, err := bindPipelineAction(c)
	if err != nil {
		return err
	}

	res := suite.Volunteers.PipelineAction(c.Request().Context(), c.Param("id"), req)
	if middleware.LoginRedirected(c) {
		return middleware.Unauthenticated(c)
	}
	if !res.Success {
		c.Response().Header().Set("HX-Reswap", "beforebegin")
		return render(c, components.Alert(components.AlertError, res.Error))
	}
	return PipelineBoardFragmentHandler(c)
}
