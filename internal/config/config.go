package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Identity provider
	IdentityJWTSecret     string // shared secret for provider-issued bearer tokens
	IdentityWebhookSecret string // standard-webhooks signing secret
	IdentityIssuer        string // expected token issuer, prefixes every token identifier

	// Files
	FileNameMaxLen int

	// Sweeper
	SweepInterval  time.Duration
	SweepPageSize  int
	SweepMaxPages  int // page budget per run; a backlog beyond this waits for the next run
	StoreRetryMax  uint64
	StoreRetryBase time.Duration

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string        // Optional: for S3-compatible services
	S3UploadExpiry time.Duration // presigned upload URL lifetime
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "OrgDrive"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/orgdrive.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Identity provider
		IdentityJWTSecret:     envRequired("IDENTITY_JWT_SECRET"),
		IdentityWebhookSecret: envString("IDENTITY_WEBHOOK_SECRET", ""),
		IdentityIssuer:        envRequired("IDENTITY_ISSUER"),

		// Files
		FileNameMaxLen: envInt("FILE_NAME_MAX_LEN", 200),

		// Sweeper
		SweepInterval:  envDuration("SWEEP_INTERVAL", 5*time.Minute),
		SweepPageSize:  envInt("SWEEP_PAGE_SIZE", 100),
		SweepMaxPages:  envInt("SWEEP_MAX_PAGES", 10),
		StoreRetryMax:  uint64(envInt("STORE_RETRY_MAX", 3)),
		StoreRetryBase: envDuration("STORE_RETRY_BASE", 100*time.Millisecond),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - holds the actual file bytes)
		S3Region:       envRequired("S3_REGION"),
		S3Bucket:       envRequired("S3_BUCKET"),
		S3AccessKey:    envRequired("S3_ACCESS_KEY"),
		S3SecretKey:    envRequired("S3_SECRET_KEY"),
		S3Endpoint:     envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
		S3UploadExpiry: envDuration("S3_UPLOAD_EXPIRY", 15*time.Minute),
	}

	// Production: webhook ingestion must be signed
	if cfg.IsProduction() && cfg.IdentityWebhookSecret == "" {
		slog.Error("production deployment requires IDENTITY_WEBHOOK_SECRET",
			"hint", "set APP_ENV=development to accept unsigned webhooks locally")
		os.Exit(1)
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
