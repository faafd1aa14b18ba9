package handlers

import (
	"net/http"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListHearingsHandler lists court hearings, optionally for one case number
func ListHearingsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Hearings.GetHearings(c.Request().Context(), c.QueryParam("case_number")), http.StatusOK)
}

// CreateHearingHandler schedules a hearing and mirrors it to the court hearing form
func CreateHearingHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	res := suite.Hearings.CreateHearing(c.Request().Context(), input)
	if res.Success {
		mirrorToForms(c, suite, services.FormCourtHearing, input)
	}
	return respond(c, res, http.StatusCreated)
}

// UpdateHearingHandler updates a hearing
func UpdateHearingHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Hearings.UpdateHearing(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}

// DeleteHearingHandler deletes a hearing
func DeleteHearingHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Hearings.DeleteHearing(c.Request().Context(), c.Param("id")), http.StatusOK)
}
