package handlers

import (
	"net/http"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListOrganizationsHandler lists every organization
func ListOrganizationsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.SuperAdmin.GetOrganizations(c.Request().Context()), http.StatusOK)
}

// GetAnyOrganizationHandler returns one organization by id
func GetAnyOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.SuperAdmin.GetOrganization(c.Request().Context(), c.Param("id")), http.StatusOK)
}

func bindOrganizationInput(c echo.Context) (services.OrganizationInput, error) {
	var input services.OrganizationInput
	if err := c.Bind(&input); err != nil {
		return input, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return input, nil
}

// CreateOrganizationHandler creates an organization
func CreateOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindOrganizationInput(c)
	if err != nil {
		return err
	}
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return respond(c, suite.SuperAdmin.CreateOrganization(c.Request().Context(), input), http.StatusCreated)
}

// UpdateAnyOrganizationHandler updates an organization by id
func UpdateAnyOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindOrganizationInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.SuperAdmin.UpdateOrganization(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}

// DeleteOrganizationHandler deletes an organization
func DeleteOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.SuperAdmin.DeleteOrganization(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// ListAnyOrganizationUsersHandler lists the users of an organization
func ListAnyOrganizationUsersHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.SuperAdmin.GetOrganizationUsers(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// AssignUserHandler moves a user into an organization with a role
func AssignUserHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var req struct {
		OrganizationID string `json:"organization_id" form:"organization_id"`
		Role           string `json:"role" form:"role"`
	}
	if err := c.Bind(&req); err != nil || req.OrganizationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "organization_id is required")
	}
	return respond(c, suite.SuperAdmin.AssignUserToOrganization(c.Request().Context(), c.Param("id"), req.OrganizationID, req.Role), http.StatusOK)
}

// SwitchOrganizationHandler changes the administrator's organization context
func SwitchOrganizationHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var req struct {
		OrganizationID string `json:"organization_id" form:"organization_id"`
	}
	if err := c.Bind(&req); err != nil || req.OrganizationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "organization_id is required")
	}
	return respond(c, suite.SuperAdmin.SwitchOrganization(c.Request().Context(), req.OrganizationID), http.StatusOK)
}
