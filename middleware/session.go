package middleware

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"casa_portal_go/config"
	"casa_portal_go/session"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// ContextKeyStore is the context key for the request's session store
	ContextKeyStore = "session_store"
	// ContextKeyLoginRedirect marks a request whose backend call answered 401
	ContextKeyLoginRedirect = "login_redirect"
	// LoginPath is where unauthenticated users are sent
	LoginPath = "/login"
)

var errMalformedCookie = errors.New("malformed session cookie")

// Sealer encrypts cookie values so the bearer token never reaches the browser in clear text
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives an XChaCha20-Poly1305 key from the session secret
func NewSealer(secret string) (*Sealer, error) {
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie cipher: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts value, binding it to the cookie name
func (s *Sealer) Seal(name, value string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(value)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal for the same cookie name
func (s *Sealer) Open(name, sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", errMalformedCookie
	}
	if len(data) < s.aead.NonceSize() {
		return "", errMalformedCookie
	}
	nonce, ciphertext := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", errMalformedCookie
	}
	return string(plain), nil
}

// CookieStore is a session.Store over the request's cookies. Values written during the
// request are visible to later reads of the same request.
type CookieStore struct {
	c       echo.Context
	sealer  *Sealer
	secure  bool
	maxAge  time.Duration
	pending map[string]string
	cleared map[string]bool
}

// NewCookieStore binds a store to one request
func NewCookieStore(c echo.Context, sealer *Sealer, secure bool) *CookieStore {
	return &CookieStore{
		c:       c,
		sealer:  sealer,
		secure:  secure,
		maxAge:  session.DefaultMaxAge,
		pending: make(map[string]string),
		cleared: make(map[string]bool),
	}
}

func (s *CookieStore) Get(key string) string {
	if v, ok := s.pending[key]; ok {
		return v
	}
	if s.cleared[key] {
		return ""
	}
	cookie, err := s.c.Cookie(key)
	if err != nil || cookie.Value == "" {
		return ""
	}
	value, err := s.sealer.Open(key, cookie.Value)
	if err != nil {
		return ""
	}
	return value
}

func (s *CookieStore) Set(key, value string) {
	sealed, err := s.sealer.Seal(key, value)
	if err != nil {
		s.c.Logger().Errorf("failed to seal session cookie %s: %v", key, err)
		return
	}
	delete(s.cleared, key)
	s.pending[key] = value
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) Clear(keys ...string) {
	for _, key := range keys {
		delete(s.pending, key)
		s.cleared[key] = true
		s.c.SetCookie(&http.Cookie{
			Name:     key,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// Session attaches a CookieStore to every request
func Session(cfg *config.Config, sealer *Sealer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyStore, NewCookieStore(c, sealer, cfg.IsProduction()))
			return next(c)
		}
	}
}

// GetStore returns the request's session store
func GetStore(c echo.Context) session.Store {
	if store, ok := c.Get(ContextKeyStore).(session.Store); ok {
		return store
	}
	return nil
}

// EchoNavigator records a login redirect on the request. HTMX clients are told through
// HX-Redirect; the handler's responder finishes the response.
type EchoNavigator struct {
	c echo.Context
}

func NewEchoNavigator(c echo.Context) EchoNavigator {
	return EchoNavigator{c: c}
}

func (n EchoNavigator) RedirectToLogin() {
	n.c.Set(ContextKeyLoginRedirect, true)
	if IsHTMX(n.c) {
		n.c.Response().Header().Set("HX-Redirect", LoginPath)
	}
}

// LoginRedirected reports whether a backend call during this request answered 401
func LoginRedirected(c echo.Context) bool {
	redirected, _ := c.Get(ContextKeyLoginRedirect).(bool)
	return redirected
}

// IsHTMX reports an HTMX request
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
