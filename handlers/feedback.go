package handlers

import (
	"net/http"
	"strings"

	"casa_portal_go/middleware"
	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListFeedbackHandler lists feedback, optionally by status
func ListFeedbackHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Feedback.GetFeedback(c.Request().Context(), c.QueryParam("status"), pageQuery(c)), http.StatusOK)
}

// SubmitFeedbackHandler submits feedback and mirrors it to the feedback form
func SubmitFeedbackHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var input services.FeedbackInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message is required")
	}
	if input.PageURL == "" {
		input.PageURL = c.Request().Referer()
	}

	submittedBy := ""
	if user := middleware.GetCurrentUser(c); user != nil {
		submittedBy = user.Email
	}

	res := suite.Feedback.SubmitFeedback(c.Request().Context(), input, submittedBy)
	if res.Success {
		mirrorToForms(c, suite, services.FormFeedback, map[string]interface{}{
			"category": res.Data.Category.String(),
			"subject":  res.Data.Subject.String(),
			"message":  res.Data.Message.String(),
			"rating":   input.Rating,
			"page_url": input.PageURL,
		})
	}
	return respond(c, res, http.StatusCreated)
}

// UpdateFeedbackStatusHandler moves feedback through its review states
func UpdateFeedbackStatusHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	var req struct {
		Status     string `json:"status" form:"status"`
		AdminNotes string `json:"admin_notes" form:"admin_notes"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	return respond(c, suite.Feedback.UpdateFeedbackStatus(c.Request().Context(), c.Param("id"), req.Status, req.AdminNotes), http.StatusOK)
}
