package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/university/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "EdDSA", cfg.Algorithm)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	require.True(t, cfg.RotateRefreshTokens)
	require.True(t, cfg.CSRFEnabled)
	require.False(t, cfg.AllowHeaderAuth)
	require.Equal(t, []string{"example.com", "test.com"}, cfg.BlockedEmailDomains)
	require.True(t, cfg.Cookie().Secure)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("ACCESS_TOKEN_LIFETIME", "5")
	t.Setenv("REFRESH_TOKEN_LIFETIME", "12h")
	t.Setenv("ROTATE_REFRESH_TOKENS", "false")
	t.Setenv("ALLOW_HEADER_AUTH", "yes") // not a bool, default kept
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.uni.edu, ,http://localhost:5173")
	t.Setenv("BLOCKED_EMAIL_DOMAINS", "mailinator.com")
	t.Setenv("COOKIE_DOMAIN", "uni.edu")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 12*time.Hour, cfg.RefreshTTL)
	require.False(t, cfg.RotateRefreshTokens)
	require.False(t, cfg.AllowHeaderAuth)
	require.Equal(t, []string{"https://portal.uni.edu", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	require.Equal(t, []string{"mailinator.com"}, cfg.BlockedEmailDomains)

	cookie := cfg.Cookie()
	require.False(t, cookie.Secure)
	require.Equal(t, "uni.edu", cookie.Domain)
}

func TestValidate(t *testing.T) {
	base := LoadConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short hs256 secret", func(c *Config) { c.Algorithm = "HS256"; c.SigningKey = "short" }, "JWT_SIGNING_KEY"},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "RS256" }, "JWT_ALGORITHM"},
		{"refresh shorter than access", func(c *Config) { c.RefreshTTL = time.Minute }, "REFRESH_TOKEN_LIFETIME"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"debug in prod", func(c *Config) { c.Env = "prod"; c.Debug = true; c.CSRFSecret = "x" }, "DEBUG"},
		{"prod without csrf secret", func(c *Config) { c.Env = "prod" }, "CSRF_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("hs256 with long secret", func(t *testing.T) {
		cfg := base
		cfg.Algorithm = "HS256"
		cfg.SigningKey = "0123456789abcdef0123456789abcdef"
		require.NoError(t, cfg.Validate())
	})
}

func TestInitSigner(t *testing.T) {
	t.Run("hs256", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.Algorithm = "HS256"
		cfg.SigningKey = "0123456789abcdef0123456789abcdef"
		s, err := InitSigner(cfg, slogx.Discard())
		require.NoError(t, err)
		require.Equal(t, "HS256", s.Alg())
	})

	t.Run("eddsa key file is reused", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.PrivateKeyFile = t.TempDir() + "/keys/signing.pem"

		first, err := InitSigner(cfg, slogx.Discard())
		require.NoError(t, err)
		second, err := InitSigner(cfg, slogx.Discard())
		require.NoError(t, err)
		require.Equal(t, "EdDSA", first.Alg())
		require.Equal(t, first.VerificationKey(), second.VerificationKey())
	})

	t.Run("ephemeral eddsa", func(t *testing.T) {
		cfg := LoadConfig()
		first, err := InitSigner(cfg, slogx.Discard())
		require.NoError(t, err)
		second, err := InitSigner(cfg, slogx.Discard())
		require.NoError(t, err)
		require.NotEqual(t, first.VerificationKey(), second.VerificationKey())
	})
}
