package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Legacy snapshot backends.
const (
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendDynamoDB = "dynamodb"
	SnapshotBackendNone     = "none"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	DBMaxConns         int
	JWTSecret          string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string

	ReportMaxPerPage          int
	ReportRecurringMaxPerPage int
	StoragePublicPrefix       string

	SnapshotBackend     string
	LegacyDynamoDBTable string
	AWSRegion           string
}

// LoadConfig loads the API configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg, err := LoadStoreConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadStoreConfig loads the configuration needed to reach the snapshot store. It does
// not require JWT_SECRET, and DATABASE_URL only for the postgres backend.
func LoadStoreConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 10),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),

		ReportMaxPerPage:          getEnvInt("REPORT_MAX_PER_PAGE", 100),
		ReportRecurringMaxPerPage: getEnvInt("REPORT_RECURRING_MAX_PER_PAGE", 50),
		StoragePublicPrefix:       getEnv("STORAGE_PUBLIC_PREFIX", "/storage"),

		SnapshotBackend:     strings.ToLower(getEnv("LEGACY_SNAPSHOT_BACKEND", SnapshotBackendPostgres)),
		LegacyDynamoDBTable: getEnv("LEGACY_DYNAMODB_TABLE", "legacy_donation_snapshots"),
		AWSRegion:           getEnv("AWS_REGION", "eu-central-1"),
	}

	switch cfg.SnapshotBackend {
	case SnapshotBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case SnapshotBackendDynamoDB, SnapshotBackendNone:
	default:
		return nil, fmt.Errorf("LEGACY_SNAPSHOT_BACKEND must be one of postgres, dynamodb, none (got %q)", cfg.SnapshotBackend)
	}

	if cfg.ReportMaxPerPage < 1 {
		return nil, fmt.Errorf("REPORT_MAX_PER_PAGE must be positive")
	}
	if cfg.ReportRecurringMaxPerPage < 1 {
		return nil, fmt.Errorf("REPORT_RECURRING_MAX_PER_PAGE must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
