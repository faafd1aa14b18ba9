package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"casa_portal_go/apiclient"
	"casa_portal_go/middleware"
	"casa_portal_go/services"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// HeaderExportArchive carries the archive key of an export that was also stored
const HeaderExportArchive = "X-Export-Archive"

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func renderStatus(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return render(c, component)
}

// suiteFor returns the request's services or fails the request
func suiteFor(c echo.Context) (*services.Suite, error) {
	suite := middleware.GetServices(c)
	if suite == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Services not initialized")
	}
	return suite, nil
}

// failureStatus maps a failed result onto the BFF's HTTP status
func failureStatus(msg string) int {
	if msg == apiclient.MsgNoResponse {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// respond writes a service result as JSON. A backend 401 seen during the request wins over the result.
func respond[T any](c echo.Context, res apiclient.Result[T], okStatus int) error {
	if middleware.LoginRedirected(c) {
		return middleware.Unauthenticated(c)
	}
	if !res.Success {
		return c.JSON(failureStatus(res.Error), res)
	}
	return c.JSON(okStatus, res)
}

// sendExport returns an export as an attachment, archiving a copy when enabled
func sendExport(c echo.Context, suite *services.Suite, res apiclient.Result[services.Export]) error {
	if middleware.LoginRedirected(c) {
		return middleware.Unauthenticated(c)
	}
	if !res.Success {
		return c.JSON(failureStatus(res.Error), res)
	}

	export := res.Data
	if suite.Archiver.Enabled() {
		orgID := ""
		if org := middleware.GetCurrentOrganization(c); org != nil {
			orgID = org.ID
		}
		// failures are logged by the archiver and never block the download
		if archived, err := suite.Archiver.Archive(c.Request().Context(), orgID, export); err == nil && archived != nil {
			c.Response().Header().Set(HeaderExportArchive, archived.Key)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Blob(http.StatusOK, export.ContentType, export.Content)
}

// redirectToDownload sends the browser to a backend-resolved file URL
func redirectToDownload(c echo.Context, url string, err string) error {
	if middleware.LoginRedirected(c) {
		return middleware.Unauthenticated(c)
	}
	if url == "" {
		if err == "" {
			err = "Download not available"
		}
		return echo.NewHTTPError(http.StatusNotFound, err)
	}
	return c.Redirect(http.StatusFound, url)
}

// pageQuery reads page, per_page and search from the query string
func pageQuery(c echo.Context) services.PageQuery {
	q := services.PageQuery{Search: c.QueryParam("search")}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		q.PerPage = perPage
	}
	return q
}

// bindInput decodes a JSON or form body into a loose field map. Path params are not merged in.
func bindInput(c echo.Context) (map[string]interface{}, error) {
	input := make(map[string]interface{})
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, &input); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(input) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Request body is empty")
	}
	return input, nil
}

// mirrorToForms records a copy of a created record in the forms plugin. It never fails the request.
func mirrorToForms(c echo.Context, suite *services.Suite, form string, input map[string]interface{}) {
	suite.Forms.SubmitFormWithFallback(c.Request().Context(), form, input)
}
