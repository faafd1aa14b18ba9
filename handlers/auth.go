package handlers

import (
	"net/http"
	"strings"

	"casa_portal_go/apiclient"
	"casa_portal_go/middleware"
	"casa_portal_go/models"
	"casa_portal_go/templates/components"
	"casa_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const dashboardPath = "/dashboard"

// sessionView is the session as exposed to the browser. Tokens stay in the sealed cookies.
type sessionView struct {
	User         *models.User         `json:"user"`
	Organization *models.Organization `json:"organization"`
}

// LoginHandler renders the login page
func LoginHandler(c echo.Context) error {
	return render(c, pages.Login(pages.LoginView{CSRFToken: middleware.GetCSRFToken(c)}))
}

// LoginPostHandler handles the login form submission
func LoginPostHandler(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return loginFailed(c, creds, http.StatusBadRequest, "Invalid login request")
	}
	creds.Email = strings.TrimSpace(creds.Email)
	creds.OrganizationSlug = strings.TrimSpace(creds.OrganizationSlug)
	if creds.Email == "" || creds.Password == "" {
		return loginFailed(c, creds, http.StatusBadRequest, "Email and password are required")
	}

	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	res := suite.Auth.Login(c.Request().Context(), creds)
	if !res.Success {
		return loginFailed(c, creds, http.StatusUnauthorized, res.Error)
	}

	if middleware.WantsJSON(c) {
		return c.JSON(http.StatusOK, apiclient.OK(sessionView{User: res.Data.User, Organization: res.Data.Organization}))
	}
	if middleware.IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", dashboardPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func loginFailed(c echo.Context, creds models.Credentials, status int, msg string) error {
	if middleware.WantsJSON(c) {
		return c.JSON(status, apiclient.Fail[sessionView](msg))
	}
	if middleware.IsHTMX(c) {
		return render(c, components.Alert(components.AlertError, msg))
	}
	return renderStatus(c, status, pages.Login(pages.LoginView{
		CSRFToken:        middleware.GetCSRFToken(c),
		Email:            creds.Email,
		OrganizationSlug: creds.OrganizationSlug,
		Error:            msg,
	}))
}

// LogoutHandler clears the session cookies
func LogoutHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	suite.Auth.Logout()

	if middleware.WantsJSON(c) {
		return c.JSON(http.StatusOK, apiclient.OK(true))
	}
	if middleware.IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", middleware.LoginPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// GetSessionHandler returns the signed-in user and organization
func GetSessionHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	sess, err := suite.Auth.CurrentSession()
	if err != nil {
		return middleware.Unauthenticated(c)
	}
	return c.JSON(http.StatusOK, apiclient.OK(sessionView{User: sess.User, Organization: sess.Organization}))
}

// RefreshTokenHandler exchanges the refresh token for a new access token
func RefreshTokenHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	res := suite.Auth.RefreshToken(c.Request().Context())
	if !res.Success {
		return respond(c, apiclient.Fail[bool](res.Error), http.StatusOK)
	}
	return respond(c, apiclient.OK(true), http.StatusOK)
}

// ValidateTokenHandler asks the backend whether the stored token is still valid
func ValidateTokenHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Auth.ValidateToken(c.Request().Context()), http.StatusOK)
}
