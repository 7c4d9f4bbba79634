package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/notekeep/pkg/jwtx"
)

type Config struct {
	Issuer    string // Issuer claim for session tokens (default: notekeep)
	JWTSecret string // Required: HS256 shared secret, at least 32 bytes
	ClientURL string // Base URL of the web client, used for reset links and CORS (default: http://localhost:5173)

	DatabaseFile string // Path to SQLite database file (default: ./notes.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	CookieName   string // Session cookie name (default: notekeep_session)
	CookieSecure bool   // Mark the session cookie Secure (default: false, enable behind TLS)

	SessionTTL      time.Duration // Session token lifetime (default: 7 days)
	VerificationTTL time.Duration // Email verification code lifetime (default: 24h)
	ResetTTL        time.Duration // Password reset token lifetime (default: 1h)

	SMTPHost     string // SMTP relay host; empty falls back to log-only mail delivery
	SMTPPort     int    // SMTP relay port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // From address for outbound mail (default: noreply@notekeep.dev)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// ErrMissingJWTSecret means NOTES_JWT_SECRET is unset. There is no safe
// default for a signing secret, so startup refuses to continue.
var ErrMissingJWTSecret = errors.New("NOTES_JWT_SECRET is required")

func LoadConfig() Config {
	return Config{
		Issuer:    getEnvOrDefault("NOTES_ISSUER", "notekeep"),
		JWTSecret: os.Getenv("NOTES_JWT_SECRET"),
		ClientURL: getEnvOrDefault("NOTES_CLIENT_URL", "http://localhost:5173"),

		DatabaseFile: getEnvOrDefault("NOTES_DATABASE_FILE", "notes.db"),
		PepperFile:   getEnvOrDefault("NOTES_PEPPER_FILE", "pepper"),

		CookieName:   getEnvOrDefault("NOTES_COOKIE_NAME", "notekeep_session"),
		CookieSecure: getEnvBoolOrDefault("NOTES_COOKIE_SECURE", false),

		SessionTTL:      getEnvDurationOrDefault("NOTES_SESSION_TTL", jwtx.DefaultSessionTTL),
		VerificationTTL: getEnvDurationOrDefault("NOTES_VERIFICATION_TTL", 24*time.Hour),
		ResetTTL:        getEnvDurationOrDefault("NOTES_RESET_TTL", 1*time.Hour),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "noreply@notekeep.dev"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
