package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/config"
	"casa_portal_go/middleware"
	"casa_portal_go/services"
	"casa_portal_go/services/formcache"
	"casa_portal_go/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// backend is a WordPress stand-in recording hits per "METHOD /path"
type backend struct {
	*httptest.Server
	mux  *http.ServeMux
	mu   sync.Mutex
	hits map[string]int
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{mux: http.NewServeMux(), hits: make(map[string]int)}
	b.Server = httptest.NewServer(b.mux)
	t.Cleanup(b.Close)
	return b
}

func (b *backend) handle(method, path string, h http.HandlerFunc) {
	pattern := method + " /wp-json" + path
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[pattern]++
		b.mu.Unlock()
		h(w, r)
	})
}

func (b *backend) respond(method, path string, status int, body string) {
	b.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
}

func (b *backend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" /wp-json"+path]
}

// testEnv wires a service suite to the fake backend the way the Services middleware does
type testEnv struct {
	backend  *backend
	store    *session.MemoryStore
	api      *apiclient.Client
	deps     services.Deps
	archiver *services.ExportArchiver
}

func newTestEnv(t *testing.T, values map[string]string) *testEnv {
	t.Helper()
	b := newBackend(t)
	cfg := &config.Config{
		APIBaseURL:     b.URL,
		APIBasePath:    "/wp-json",
		APITimeout:     5 * time.Second,
		FormsAPIKey:    "ck_test",
		FormsAPISecret: "cs_test",
	}
	archiver := services.NewExportArchiver(services.NewLocalArchive(t.TempDir()), false, zap.NewNop())
	return &testEnv{
		backend:  b,
		store:    session.NewMemoryStore(values),
		api:      apiclient.New(cfg, zap.NewNop()),
		archiver: archiver,
		deps: services.Deps{
			Logger:   zap.NewNop(),
			Config:   cfg,
			FormMeta: formcache.NewMemoryCache(0),
			Archiver: archiver,
		},
	}
}

// context builds an echo context with the session store and service suite attached
func (env *testEnv) context(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyStore, env.store)
	bound := env.api.WithSession(env.store, middleware.NewEchoNavigator(c))
	c.Set(middleware.ContextKeyServices, services.NewSuite(bound, env.deps))
	return c, rec
}

func jsonRequest(c echo.Context) {
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
}

func formRequest(c echo.Context) {
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
}
