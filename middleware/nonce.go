package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// NonceKey stores the per-request CSP nonce in the echo and request contexts
const NonceKey contextKey = "csp_nonce"

// HTMXOrigin serves the htmx script loaded by the page layout
const HTMXOrigin = "https://unpkg.com"

func newNonce() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// ContentSecurityPolicy renders the portal policy. Scripts are limited to our origin, the
// request nonce and scriptOrigins; fetches only go back to the portal itself.
func ContentSecurityPolicy(nonce string, scriptOrigins ...string) string {
	script := append([]string{"'self'", "'nonce-" + nonce + "'"}, scriptOrigins...)
	directives := [][2]string{
		{"default-src", "'self'"},
		{"script-src", strings.Join(script, " ")},
		{"style-src", "'self' 'unsafe-inline'"},
		{"img-src", "'self' data:"},
		{"connect-src", "'self'"},
		{"form-action", "'self'"},
		{"base-uri", "'none'"},
		{"frame-ancestors", "'none'"},
	}

	parts := make([]string, len(directives))
	for i, d := range directives {
		parts[i] = d[0] + " " + d[1]
	}
	return strings.Join(parts, "; ")
}

// CSPNonce issues a fresh nonce per request, exposes it to templ components through the
// request context and sends the matching Content-Security-Policy header
func CSPNonce(scriptOrigins ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := newNonce()
			if err != nil {
				c.Logger().Errorf("csp nonce: %v", err)
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set(string(NonceKey), nonce)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), NonceKey, nonce)))
			c.Response().Header().Set("Content-Security-Policy", ContentSecurityPolicy(nonce, scriptOrigins...))
			return next(c)
		}
	}
}

// GetNonce returns the request nonce, or "" outside CSPNonce
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(NonceKey).(string)
	return nonce
}
