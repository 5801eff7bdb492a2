package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/jwtx"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	Debug     bool   // Debug mode: cookies drop the Secure flag so plain HTTP works (default: false)
	Port      int    // HTTP server port (default: 8080)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	DatabaseFile string // Path to SQLite database file (default: ./university.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	Issuer         string // Issuer claim for tokens (default: university-accounts)
	Algorithm      string // JWT signing algorithm, HS256 or EdDSA (default: EdDSA)
	SigningKey     string // HS256 shared secret, at least 32 bytes
	PrivateKeyFile string // EdDSA PKCS8 key, generated on first start; empty means an ephemeral key

	AccessTTL           time.Duration // Access token lifetime (default: 15m)
	RefreshTTL          time.Duration // Refresh token lifetime (default: 24h)
	RotateRefreshTokens bool          // Single-use refresh tokens (default: true)
	AllowHeaderAuth     bool          // Accept "Authorization: Bearer" when no cookie is sent (default: false)

	CSRFEnabled        bool     // Enforce the double-submit check on unsafe methods (default: true)
	CSRFSecret         string   // HMAC key for CSRF tokens; random per process when empty
	CORSAllowedOrigins []string // Browser origins allowed to send credentials
	CookieDomain       string   // Domain attribute of every cookie (default: host only)

	BlockedEmailDomains []string // Domains refused at registration (default: example.com, test.com)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	RateLimits httpx.RateLimits // RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_*
}

func LoadConfig() Config {
	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		Debug:     getEnvBoolOrDefault("DEBUG", false),
		Port:      getEnvIntOrDefault("PORT", 8080),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "university.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		Issuer:         getEnvOrDefault("JWT_ISSUER", "university-accounts"),
		Algorithm:      getEnvOrDefault("JWT_ALGORITHM", "EdDSA"),
		SigningKey:     os.Getenv("JWT_SIGNING_KEY"),
		PrivateKeyFile: os.Getenv("JWT_PRIVATE_KEY_FILE"),

		AccessTTL:           getEnvDurationOrDefault("ACCESS_TOKEN_LIFETIME", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:          getEnvDurationOrDefault("REFRESH_TOKEN_LIFETIME", jwtx.DefaultRefreshTokenTTL),
		RotateRefreshTokens: getEnvBoolOrDefault("ROTATE_REFRESH_TOKENS", true),
		AllowHeaderAuth:     getEnvBoolOrDefault("ALLOW_HEADER_AUTH", false),

		CSRFEnabled:        getEnvBoolOrDefault("CSRF_ENABLED", true),
		CSRFSecret:         os.Getenv("CSRF_SECRET"),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", nil),
		CookieDomain:       os.Getenv("COOKIE_DOMAIN"),

		BlockedEmailDomains: getEnvListOrDefault("BLOCKED_EMAIL_DOMAINS", service.DefaultBlockedEmailDomains),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		RateLimits: httpx.RateLimitsFromEnv(),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_LIFETIME must be positive"))
	}
	if c.RefreshTTL <= c.AccessTTL {
		errs = append(errs, errors.New("REFRESH_TOKEN_LIFETIME must be longer than ACCESS_TOKEN_LIFETIME"))
	}

	switch c.Algorithm {
	case "HS256":
		if len(c.SigningKey) < jwtx.MinHMACKeySize {
			errs = append(errs, fmt.Errorf("JWT_SIGNING_KEY must be at least %d bytes for HS256", jwtx.MinHMACKeySize))
		}
	case "EdDSA":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q not supported (HS256, EdDSA)", c.Algorithm))
	}

	if c.Env == "prod" {
		if c.Debug {
			errs = append(errs, errors.New("DEBUG must be off in prod"))
		}
		if c.CSRFEnabled && c.CSRFSecret == "" {
			errs = append(errs, errors.New("CSRF_SECRET is required in prod so tokens survive restarts"))
		}
	}

	return errors.Join(errs...)
}

// Cookie returns the attributes shared by every cookie the service sets.
func (c Config) Cookie() httpx.CookieConfig {
	return httpx.CookieConfig{Secure: !c.Debug, Domain: c.CookieDomain}
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

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
