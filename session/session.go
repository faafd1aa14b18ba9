// Package session defines where the portal keeps the signed-in state between requests.
// The HTTP adapter and the auth service read and write it through Store; production code
// backs it with browser cookies, tests use MemoryStore.
package session

import (
	"sync"
	"time"
)

// Keys under which session values are stored
const (
	KeyAuthToken        = "casa_auth_token"
	KeyRefreshToken     = "casa_refresh_token"
	KeyUserData         = "casa_user_data"
	KeyOrganizationData = "casa_organization_data"
	KeyTenantID         = "casa_tenant_id"
)

// DefaultMaxAge is how long session values live in the browser (7 days)
const DefaultMaxAge = 7 * 24 * time.Hour

// UnauthorizedKeys are cleared when the backend answers 401
var UnauthorizedKeys = []string{KeyAuthToken, KeyUserData, KeyOrganizationData, KeyTenantID}

// AllKeys are cleared on logout
var AllKeys = []string{KeyAuthToken, KeyRefreshToken, KeyUserData, KeyOrganizationData, KeyTenantID}

// Store reads and writes session values. Implementations must return "" for missing keys.
type Store interface {
	Get(key string) string
	Set(key, value string)
	Clear(keys ...string)
}

// Navigator sends the user back to the login screen
type Navigator interface {
	RedirectToLogin()
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func()

func (f NavigatorFunc) RedirectToLogin() { f() }

// NopNavigator ignores redirects (background jobs, CLI)
type NopNavigator struct{}

func (NopNavigator) RedirectToLogin() {}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty store, optionally seeded with values
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (m *MemoryStore) Get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
}

func (m *MemoryStore) Clear(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
}

// Has reports whether a non-empty value exists for key
func (m *MemoryStore) Has(key string) bool {
	return m.Get(key) != ""
}
