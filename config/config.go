package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// MinSessionSecretLength is the minimum required length for session secret in production
	MinSessionSecretLength = 32

	// DefaultFormsAPIKey and DefaultFormsAPISecret are the static forms-plugin credentials
	// shipped with the portal. Override them with FORMS_API_KEY / FORMS_API_SECRET.
	DefaultFormsAPIKey    = "ck_casa_portal_forms"
	DefaultFormsAPISecret = "cs_casa_portal_forms"
)

type Config struct {
	ServerPort  string
	Environment string
	// Remote WordPress backend
	APIBaseURL     string
	APIBasePath    string
	APITimeout     time.Duration
	FormsAPIKey    string
	FormsAPISecret string
	FormIDs        map[string]int
	// Session cookies
	SessionSecret  string
	AllowedOrigins []string
	// Form field metadata cache
	FormMetaCache    string // "memory" or "sqlite"
	FormMetaCacheTTL time.Duration
	DBPath           string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged instead of sent
	SupportEmail  string
	// Export archive (Cloudflare R2 or local)
	ExportArchive     bool
	ExportDir         string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Login rate limiting
	LoginRatePerMinute int
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	sessionSecret := getEnv("SESSION_SECRET", "")

	// Validate session secret - this will fatal in production if invalid
	ValidateSessionSecret(sessionSecret, environment)

	// In development, generate a secure secret if none provided
	if sessionSecret == "" && environment != "production" {
		sessionSecret = GenerateSecureSecret()
		log.Println("[INFO] Generated temporary session secret for development. Set SESSION_SECRET env var for persistence.")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        environment,
		APIBaseURL:         strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost"), "/"),
		APIBasePath:        getEnv("API_BASE_PATH", "/wp-json"),
		APITimeout:         getEnvDuration("API_TIMEOUT", 30*time.Second),
		FormsAPIKey:        getEnv("FORMS_API_KEY", DefaultFormsAPIKey),
		FormsAPISecret:     getEnv("FORMS_API_SECRET", DefaultFormsAPISecret),
		FormIDs:            parseFormIDs(os.Getenv("FORM_IDS")),
		SessionSecret:      sessionSecret,
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		FormMetaCache:      getEnv("FORM_META_CACHE", "memory"),
		FormMetaCacheTTL:   getEnvDuration("FORM_META_CACHE_TTL", 0),
		DBPath:             getEnv("DB_PATH", "db/formcache.db"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@casaportal.org"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "CASA Portal"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		SupportEmail:       getEnv("SUPPORT_EMAIL", ""),
		ExportArchive:      getEnvBool("EXPORT_ARCHIVE", false),
		ExportDir:          getEnv("EXPORT_DIR", "data/archive"),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 5),
	}
}

// IsProduction reports whether cookies must carry the Secure flag
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// parseFormIDs reads overrides like "case_intake=3,contact_log=7"
func parseFormIDs(raw string) map[string]int {
	ids := make(map[string]int)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || id <= 0 {
			continue
		}
		ids[strings.TrimSpace(name)] = id
	}
	return ids
}

// ValidateSessionSecret validates the session secret meets security requirements
// In production, it must be at least 32 bytes and not a known insecure default
func ValidateSessionSecret(secret string, environment string) error {
	// Known insecure defaults that must be rejected
	insecureDefaults := []string{
		"dev-secret-change-in-production",
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] SESSION_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			log.Printf("[WARNING] SESSION_SECRET is set to an insecure default value. This is acceptable only in development.")
			return nil
		}
	}

	if environment == "production" {
		if len(secret) < MinSessionSecretLength {
			log.Fatalf("[CRITICAL] SESSION_SECRET must be at least %d characters in production (current: %d). Generate with: openssl rand -base64 32", MinSessionSecretLength, len(secret))
		}
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret
// This is used only for development when no secret is provided
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("[WARNING] Failed to generate secure secret: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
