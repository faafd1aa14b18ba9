package handlers

import (
	"net/http"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// ListHomeVisitReportsHandler lists home visit reports, optionally for one case number
func ListHomeVisitReportsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.GetHomeVisitReports(c.Request().Context(), c.QueryParam("case_number")), http.StatusOK)
}

// GetHomeVisitReportHandler returns one home visit report
func GetHomeVisitReportHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.GetHomeVisitReport(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// CreateHomeVisitReportHandler files a home visit report and mirrors it to its form
func CreateHomeVisitReportHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	res := suite.Reports.CreateHomeVisitReport(c.Request().Context(), input)
	if res.Success {
		mirrorToForms(c, suite, services.FormHomeVisitReport, input)
	}
	return respond(c, res, http.StatusCreated)
}

// UpdateHomeVisitReportHandler updates a home visit report
func UpdateHomeVisitReportHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.UpdateHomeVisitReport(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}

// ListCourtReportsHandler lists court reports, optionally for one case number
func ListCourtReportsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.GetCourtReports(c.Request().Context(), c.QueryParam("case_number")), http.StatusOK)
}

// GetCourtReportHandler returns one court report
func GetCourtReportHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.GetCourtReport(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// CreateCourtReportHandler drafts a court report
func CreateCourtReportHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.CreateCourtReport(c.Request().Context(), input), http.StatusCreated)
}

// UpdateCourtReportHandler updates a court report
func UpdateCourtReportHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Reports.UpdateCourtReport(c.Request().Context(), c.Param("id"), input), http.StatusOK)
}
