package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSecurityPolicy(t *testing.T) {
	csp := ContentSecurityPolicy("abc", HTMXOrigin)

	assert.True(t, strings.HasPrefix(csp, "default-src 'self'; "))
	assert.Contains(t, csp, "script-src 'self' 'nonce-abc' "+HTMXOrigin+";")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Contains(t, csp, "style-src 'self' 'unsafe-inline';")

	bare := ContentSecurityPolicy("abc")
	assert.Contains(t, bare, "script-src 'self' 'nonce-abc';")
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()
	handler := CSPNonce(HTMXOrigin)(func(c echo.Context) error {
		return c.String(http.StatusOK, GetNonce(c.Request().Context()))
	})

	var seen []string
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)
		require.NoError(t, handler(c))

		nonce := rec.Body.String()
		require.NotEmpty(t, nonce)
		assert.Equal(t, nonce, c.Get(string(NonceKey)))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'nonce-"+nonce+"'")
		seen = append(seen, nonce)
	}
	assert.NotEqual(t, seen[0], seen[1], "every request gets its own nonce")
}

func TestGetNonce_Missing(t *testing.T) {
	assert.Empty(t, GetNonce(context.Background()))
}
