package handlers

import (
	"net/http"

	"casa_portal_go/models"
	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// GetOrganizationHandler returns the current organization
func GetOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Tenant.GetCurrentOrganization(c.Request().Context()), http.StatusOK)
}

// UpdateOrganizationHandler updates the current organization
func UpdateOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Tenant.UpdateOrganization(c.Request().Context(), input), http.StatusOK)
}

// GetSettingsHandler returns the organization settings
func GetSettingsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Tenant.GetSettings(c.Request().Context()), http.StatusOK)
}

// UpdateSettingsHandler replaces the organization settings
func UpdateSettingsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var settings models.OrganizationSettings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid settings")
	}
	return respond(c, suite.Tenant.UpdateSettings(c.Request().Context(), settings), http.StatusOK)
}

// ListOrganizationUsersHandler lists users in the current organization
func ListOrganizationUsersHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Tenant.GetUsers(c.Request().Context()), http.StatusOK)
}

// InviteUserHandler invites a user into the current organization
func InviteUserHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var invite services.InviteRequest
	if err := c.Bind(&invite); err != nil || invite.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	return respond(c, suite.Tenant.InviteUser(c.Request().Context(), invite), http.StatusCreated)
}
