package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"
	"casa_portal_go/services"
	"casa_portal_go/session"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyOrganization is the context key for the user's organization
	ContextKeyOrganization = "organization"
	// ContextKeyServices is the context key for the request's service suite
	ContextKeyServices = "services"
)

// Services builds the domain services for each request over its cookie session.
// Must run after Session.
func Services(api *apiclient.Client, deps services.Deps) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := GetStore(c)
			if store == nil {
				store = session.NewMemoryStore(nil)
			}

			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				ctx := apiclient.ContextWithRequestID(c.Request().Context(), id)
				c.SetRequest(c.Request().WithContext(ctx))
			}

			bound := api.WithSession(store, NewEchoNavigator(c))
			c.Set(ContextKeyServices, services.NewSuite(bound, deps))
			return next(c)
		}
	}
}

// GetServices returns the request's service suite
func GetServices(c echo.Context) *services.Suite {
	suite, _ := c.Get(ContextKeyServices).(*services.Suite)
	return suite
}

// RequireAuth requires an unexpired token and a stored user
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := GetStore(c)
			if store == nil {
				return Unauthenticated(c)
			}

			token := store.Get(session.KeyAuthToken)
			if token == "" || services.TokenExpired(token, time.Now()) {
				store.Clear(session.UnauthorizedKeys...)
				return Unauthenticated(c)
			}

			var user models.User
			if err := json.Unmarshal([]byte(store.Get(session.KeyUserData)), &user); err != nil || user.ID == "" {
				store.Clear(session.UnauthorizedKeys...)
				return Unauthenticated(c)
			}
			if !user.IsActive {
				store.Clear(session.AllKeys...)
				return Unauthenticated(c)
			}

			c.Set(ContextKeyUser, &user)
			var org models.Organization
			if err := json.Unmarshal([]byte(store.Get(session.KeyOrganizationData)), &org); err == nil {
				c.Set(ContextKeyOrganization, &org)
			}
			return next(c)
		}
	}
}

// RequirePermission allows the request only when the user's roles grant permission
func RequirePermission(permission services.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !services.HasPermission(GetCurrentUser(c), permission) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentOrganization retrieves the user's organization from context
func GetCurrentOrganization(c echo.Context) *models.Organization {
	org, ok := c.Get(ContextKeyOrganization).(*models.Organization)
	if !ok {
		return nil
	}
	return org
}

// WantsJSON reports API and fetch requests that expect a JSON error instead of a redirect
func WantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// Unauthenticated ends the request for a caller without a usable session
func Unauthenticated(c echo.Context) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", LoginPath)
		return c.NoContent(http.StatusUnauthorized)
	}
	if WantsJSON(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
