package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/config"
	"casa_portal_go/session"

	"go.uber.org/zap"
)

// fakeBackend is a WordPress stand-in with per-route handlers and hit counters
type fakeBackend struct {
	*httptest.Server
	mux  *http.ServeMux
	mu   sync.Mutex
	hits map[string]int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{mux: http.NewServeMux(), hits: make(map[string]int)}
	b.Server = httptest.NewServer(b.mux)
	t.Cleanup(b.Close)
	return b
}

// handle registers a handler for "METHOD /path" below /wp-json
func (b *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	pattern := method + " /wp-json" + path
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[pattern]++
		b.mu.Unlock()
		h(w, r)
	})
}

// respond registers a fixed JSON answer
func (b *fakeBackend) respond(method, path string, status int, body string) {
	b.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func (b *fakeBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" /wp-json"+path]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:     baseURL,
		APIBasePath:    "/wp-json",
		APITimeout:     5 * time.Second,
		FormsAPIKey:    "ck_test",
		FormsAPISecret: "cs_test",
		SupportEmail:   "support@casa.test",
	}
}

func newTestClient(baseURL string, store session.Store, opts ...apiclient.Option) *apiclient.Client {
	if store == nil {
		store = session.NewMemoryStore(nil)
	}
	return apiclient.New(testConfig(baseURL), zap.NewNop(), opts...).WithSession(store, nil)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
