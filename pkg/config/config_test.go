package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "STORE_BACKEND", "JWT_SECRET", "CORS_ORIGINS", "SITE_URL", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, BackendFirestore, cfg.StoreBackend)
	require.False(t, cfg.IsProduction())
	require.Empty(t, cfg.JWTSecret)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, 20, cfg.RateLimitPerMinute)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SITE_URL", "https://youdeservebetter.example/")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.True(t, cfg.IsProduction())
	require.Equal(t, BackendMongo, cfg.StoreBackend)
	require.Empty(t, cfg.JWTSecret)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.Equal(t, "https://youdeservebetter.example", cfg.SiteURL)
	require.Equal(t, 5, cfg.RateLimitPerMinute)
}

func TestLoadDevelopmentSecretNeedsExplicitEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	t.Setenv("ENV", "development")
	require.Equal(t, devJWTSecret, Load().JWTSecret)

	t.Setenv("ENV", "staging")
	require.Empty(t, Load().JWTSecret)

	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "from-env")
	require.Equal(t, "from-env", Load().JWTSecret)
}

func TestGetEnvIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	require.Equal(t, 7, getEnvInt("RATE_LIMIT_PER_MINUTE", 7))
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-3")
	require.Equal(t, 7, getEnvInt("RATE_LIMIT_PER_MINUTE", 7))
}
