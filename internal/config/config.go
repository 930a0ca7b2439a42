package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis catalog cache (optional; empty disables caching)
	RedisURL string
	CacheTTL time.Duration

	// API auth: static bearer token presented by the conversation handler and
	// the administrative collaborator. Session/OIDC auth lives upstream.
	AuthToken string

	// Contextual analyzer (language-model collaborator)
	AIProvider string // "deepseek", "openai", "gemini", "" to disable
	AIAPIKey   string
	AIModel    string
	AIBaseURL  string // override for openai-compatible providers
	AITimeout  time.Duration

	// Pattern-set file override (embedded defaults used when empty/missing)
	PatternsFile string

	// Appointment scheduling platform referenced in referral messages
	AppointmentURL string

	// Expert alert email (optional; empty SMTPHost disables alerts)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	// Collaborator probe
	ProbeInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/mindline?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CacheTTL:    getDuration("CACHE_TTL", 30*time.Second),
		AuthToken:   getEnv("AUTH_TOKEN", ""),

		AIProvider: getEnv("AI_PROVIDER", "deepseek"),
		AIAPIKey:   getEnv("AI_API_KEY", ""),
		AIModel:    getEnv("AI_MODEL", ""),
		AIBaseURL:  getEnv("AI_BASE_URL", ""),
		AITimeout:  getDuration("AI_TIMEOUT", 25*time.Second),

		PatternsFile:   getEnv("PATTERNS_FILE", ""),
		AppointmentURL: getEnv("APPOINTMENT_URL", "https://sigepsi.garcessebastian.com/"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Mindline Alerts"),

		ProbeInterval: getDuration("PROBE_INTERVAL", 1*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsContextualEnabled returns true if a contextual analyzer provider is configured.
func (c *Config) IsContextualEnabled() bool {
	if c.AIProvider == "" {
		return false
	}
	// Gemini may authenticate via application default credentials.
	return c.AIAPIKey != "" || c.AIProvider == "gemini"
}

// IsEmailEnabled returns true if expert alert email is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
