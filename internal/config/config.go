package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverAuto      = "auto"
	DriverMemory    = "memory"
	DriverFirestore = "firestore"
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
)

// Config holds the configuration for the journal service.
// Environment variables are parsed with the TRADEJOURNAL_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	DBDriver    string      `envconfig:"DB_DRIVER" default:"auto"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort       int      `envconfig:"HTTP_PORT" default:"8000"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000,http://localhost:8080"`

	// Collections: trades use the base name, the rest are suffixed.
	CollectionBase string `envconfig:"COLLECTION_BASE" default:"trades"`

	// Firebase / Firestore
	FirebaseProjectID       string `envconfig:"FIREBASE_PROJECT_ID" default:""`
	FirebaseDatabaseID      string `envconfig:"FIREBASE_DATABASE_ID" default:"journal-db"`
	FirebaseCredentialsFile string `envconfig:"FIREBASE_CREDENTIALS_FILE" default:""`

	// Self-hosted SQL backends
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/journal.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Demo tokens are only honoured outside production.
	DemoTokenPrefix string `envconfig:"DEMO_TOKEN_PREFIX" default:"demo_token_"`

	// Pagination and export
	DefaultLimit    int `envconfig:"DEFAULT_LIMIT" default:"100"`
	MaxLimit        int `envconfig:"MAX_LIMIT" default:"1000"`
	ExportBatchSize int `envconfig:"EXPORT_BATCH_SIZE" default:"1000"`

	// Health and startup
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates the environment and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.Environment {
	case EnvDevelopment, EnvTesting:
		defaultDB = DriverMemory
	case EnvProduction:
		defaultDB = DriverFirestore
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}

	if c.DBDriver == "" || c.DBDriver == DriverAuto {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{DriverMemory: true, DriverFirestore: true, DriverSQLite: true, DriverPostgres: true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == DriverPostgres && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
	}
	if c.DefaultLimit < 1 || c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("invalid limits: DEFAULT_LIMIT=%d MAX_LIMIT=%d", c.DefaultLimit, c.MaxLimit)
	}
	if c.ExportBatchSize < 1 {
		c.ExportBatchSize = c.MaxLimit
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: TRADEJOURNAL_HTTP_PORT, TRADEJOURNAL_DB_DRIVER
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TRADEJOURNAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("collection_base", cfg.CollectionBase).
		Str("firebase_project", cfg.FirebaseProjectID).
		Str("firebase_database", cfg.FirebaseDatabaseID).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		DBDriver:                  DriverMemory,
		LogLevel:                  "debug",
		HTTPPort:                  8000,
		CollectionBase:            "trades",
		FirebaseDatabaseID:        "journal-db",
		DemoTokenPrefix:           "demo_token_",
		AllowedOrigins:            []string{"http://localhost:5173"},
		DefaultLimit:              100,
		MaxLimit:                  1000,
		ExportBatchSize:           1000,
		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 2,
		BootstrapTimeoutSeconds:   5,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// HealthInterval is the period between background health probes.
func (c *Config) HealthInterval() time.Duration {
	return seconds(c.HealthIntervalSeconds, 30)
}

func (c *Config) HealthProbeTimeout() time.Duration {
	return seconds(c.HealthProbeTimeoutSeconds, 2)
}

func (c *Config) BootstrapTimeout() time.Duration {
	return seconds(c.BootstrapTimeoutSeconds, 5)
}

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
