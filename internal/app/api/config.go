package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	catalogstorage "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/storage"
	platformcache "github.com/Rajeshrr07/EiliyaBill/internal/platform/cache"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/database"
	platformtemporal "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal"
)

const (
	ImageStorageLocal = "local"
	ImageStorageS3    = "s3"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port     string
	Database database.Config
	Temporal platformtemporal.ClientConfig
	Redis    platformcache.Config

	ReportCacheTTL time.Duration
	ReportLocation *time.Location

	SessionTTL      time.Duration
	SessionSecret   string
	// EphemeralSecret is set when SESSION_SECRET was missing and a random one was generated.
	EphemeralSecret bool
	CookieSecure    bool
	CORSOrigins     []string

	ImageStorage string
	ImageDir     string
	S3           catalogstorage.S3Config

	SessionPurgeInterval time.Duration
}

// LoadConfig reads an optional .env file and the environment, applies
// defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:     envDefault("PORT", "8080"),
		Database: database.ConfigFromEnv(),
		Temporal: platformtemporal.ClientConfig{
			Address:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
			Namespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
			Disabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		},
		Redis:         platformcache.ConfigFromEnv(),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		CookieSecure:  isTruthy(os.Getenv("COOKIE_SECURE")),
		CORSOrigins:   splitList(envDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		ImageStorage:  strings.ToLower(envDefault("IMAGE_STORAGE", ImageStorageLocal)),
		ImageDir:      envDefault("IMAGE_DIR", "uploads"),
		S3: catalogstorage.S3Config{
			Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:    strings.TrimSpace(os.Getenv("S3_REGION")),
			Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Key:       strings.TrimSpace(os.Getenv("S3_KEY")),
			Secret:    strings.TrimSpace(os.Getenv("S3_SECRET")),
			PublicURL: strings.TrimSpace(os.Getenv("S3_URL")),
		},
	}

	var err error
	if cfg.ReportCacheTTL, err = positiveDuration("REPORT_CACHE_TTL_SECONDS", time.Second, 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL_HOURS", time.Hour, 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionPurgeInterval, err = positiveDuration("SESSION_PURGE_INTERVAL_MINUTES", time.Minute, 0); err != nil {
		return Config{}, err
	}

	zone := envDefault("REPORT_TIMEZONE", "UTC")
	if cfg.ReportLocation, err = time.LoadLocation(zone); err != nil {
		return Config{}, fmt.Errorf("REPORT_TIMEZONE %q is not a known time zone: %w", zone, err)
	}

	switch cfg.ImageStorage {
	case ImageStorageLocal:
	case ImageStorageS3:
		if cfg.S3.Bucket == "" {
			return Config{}, fmt.Errorf("IMAGE_STORAGE=s3 requires S3_BUCKET")
		}
	default:
		return Config{}, fmt.Errorf("IMAGE_STORAGE must be %q or %q", ImageStorageLocal, ImageStorageS3)
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.SessionSecret = secret
		cfg.EphemeralSecret = true
	}
	return cfg, nil
}

// positiveDuration reads an integer count of unit from key; an absent key yields fallback.
func positiveDuration(key string, unit, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(n) * unit, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
