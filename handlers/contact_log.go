package handlers

import (
	"net/http"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListContactLogsHandler lists contact logs, optionally for one case number
func ListContactLogsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.ContactLogs.GetContactLogs(c.Request().Context(), c.QueryParam("case_number"), pageQuery(c)), http.StatusOK)
}

// GetContactLogHandler returns one contact log
func GetContactLogHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.ContactLogs.GetContactLog(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// CreateContactLogHandler records a contact and mirrors it to the contact log form
func CreateContactLogHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	res := suite.ContactLogs.CreateContactLog(c.Request().Context(), input)
	if res.Success {
		mirrorToForms(c, suite, services.FormContactLog, input)
	}
	return respond(c, res, http.StatusCreated)
}

// UpdateContactLogHandler updates a contact log
func UpdateContactLogHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.ContactLogs.UpdateContactLog(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}

// DeleteContactLogHandler deletes a contact log
func DeleteContactLogHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.ContactLogs.DeleteContactLog(c.Request().Context(), c.Param("id")), http.StatusOK)
}
