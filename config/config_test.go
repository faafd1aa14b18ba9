package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("API_BASE_URL", "https://casa.example.org/")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("FORMS_API_KEY", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("FORM_META_CACHE_TTL", "")

	cfg := Load()

	assert.Equal(t, "https://casa.example.org", cfg.APIBaseURL)
	assert.Equal(t, "/wp-json", cfg.APIBasePath)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, DefaultFormsAPIKey, cfg.FormsAPIKey)
	assert.NotEmpty(t, cfg.SessionSecret)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, time.Duration(0), cfg.FormMetaCacheTTL)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("Bool", func(t *testing.T) {
		t.Setenv("X_BOOL", "yes")
		assert.True(t, getEnvBool("X_BOOL", false))
		t.Setenv("X_BOOL", "nonsense")
		assert.True(t, getEnvBool("X_BOOL", true))
	})

	t.Run("Duration", func(t *testing.T) {
		t.Setenv("X_DUR", "90s")
		assert.Equal(t, 90*time.Second, getEnvDuration("X_DUR", time.Second))
		t.Setenv("X_DUR", "soon")
		assert.Equal(t, time.Second, getEnvDuration("X_DUR", time.Second))
	})

	t.Run("Int", func(t *testing.T) {
		t.Setenv("X_INT", "12")
		assert.Equal(t, 12, getEnvInt("X_INT", 5))
		t.Setenv("X_INT", "twelve")
		assert.Equal(t, 5, getEnvInt("X_INT", 5))
	})
}

func TestParseFormIDs(t *testing.T) {
	ids := parseFormIDs("case_intake=3, contact_log = 7,broken,bad=x,neg=-1")
	assert.Equal(t, map[string]int{"case_intake": 3, "contact_log": 7}, ids)
	assert.Empty(t, parseFormIDs(""))
}
