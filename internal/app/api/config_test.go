package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DB_DRIVER", "DATABASE_DSN", "POSTGRES_DSN", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE",
		"TEMPORAL_DISABLED", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REPORT_CACHE_TTL_SECONDS",
		"REPORT_TIMEZONE", "SESSION_TTL_HOURS", "SESSION_SECRET", "COOKIE_SECURE", "CORS_ALLOWED_ORIGINS",
		"IMAGE_STORAGE", "IMAGE_DIR", "S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_KEY", "S3_SECRET", "S3_URL",
		"SESSION_PURGE_INTERVAL_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.UTC.String(), cfg.ReportLocation.String())
	assert.Equal(t, 60*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.SessionPurgeInterval)
	assert.Equal(t, ImageStorageLocal, cfg.ImageStorage)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.EphemeralSecret)
	assert.Len(t, cfg.SessionSecret, 64)
	assert.False(t, cfg.Temporal.Disabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file:billing.db")
	t.Setenv("TEMPORAL_DISABLED", "yes")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "30")
	t.Setenv("REPORT_TIMEZONE", "Asia/Kolkata")
	t.Setenv("SESSION_TTL_HOURS", "12")
	t.Setenv("SESSION_SECRET", "a-very-long-session-secret")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pos.example.com, https://admin.example.com")
	t.Setenv("IMAGE_STORAGE", "S3")
	t.Setenv("S3_BUCKET", "product-images")
	t.Setenv("SESSION_PURGE_INTERVAL_MINUTES", "15")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:billing.db", cfg.Database.DSN)
	assert.True(t, cfg.Temporal.Disabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, "Asia/Kolkata", cfg.ReportLocation.String())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "a-very-long-session-secret", cfg.SessionSecret)
	assert.False(t, cfg.EphemeralSecret)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://pos.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, ImageStorageS3, cfg.ImageStorage)
	assert.Equal(t, "product-images", cfg.S3.Bucket)
	assert.Equal(t, 15*time.Minute, cfg.SessionPurgeInterval)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"purge interval":    {"SESSION_PURGE_INTERVAL_MINUTES": "-5"},
		"cache ttl":         {"REPORT_CACHE_TTL_SECONDS": "soon"},
		"session ttl":       {"SESSION_TTL_HOURS": "0"},
		"time zone":         {"REPORT_TIMEZONE": "Mars/Olympus"},
		"image backend":     {"IMAGE_STORAGE": "ftp"},
		"s3 without bucket": {"IMAGE_STORAGE": "s3"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
