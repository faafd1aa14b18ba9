package handlers

import (
	"net/http"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"
	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListFormsHandler lists the logical forms and their plugin field tables
func ListFormsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	defs := make([]services.FormDefinition, 0)
	for _, name := range suite.Forms.FormNames() {
		def, _ := suite.Forms.Definition(name)
		defs = append(defs, def)
	}
	return c.JSON(http.StatusOK, apiclient.OK(defs))
}

// GetFormMetaHandler returns the plugin field metadata for a logical form
func GetFormMetaHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	def, ok := suite.Forms.Definition(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown form")
	}

	meta, err := suite.Forms.GetFormMeta(c.Request().Context(), def.FormID)
	if err != nil {
		return respond(c, apiclient.Fail[*models.FormMeta](err.Error()), http.StatusOK)
	}
	return respond(c, apiclient.OK(meta), http.StatusOK)
}

// SubmitFormHandler submits abstract field values to a logical form
func SubmitFormHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	if _, ok := suite.Forms.Definition(c.Param("name")); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown form")
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Forms.SubmitForm(c.Request().Context(), c.Param("name"), input), http.StatusCreated)
}
