package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	APIKey      string `envconfig:"API_KEY"` // API key for authentication
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	LogDir      string `envconfig:"LOG_DIR" default:"logs"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	Version     string `envconfig:"VERSION" default:"dev"`

	// Comma separated proxy IPs whose X-Forwarded-For is trusted
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	DBDriver   string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBUser     string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string        `envconfig:"DB_PORT" default:"5432"`
	DBName     string        `envconfig:"DB_NAME" default:"slothouse"`
	SQLitePath string        `envconfig:"SQLITE_PATH" default:"slothouse.db"`
	DBMaxConns int           `envconfig:"DB_MAX_CONNS" default:"20"`
	DBMaxIdle  time.Duration `envconfig:"DB_MAX_IDLE" default:"5m"`
	DBMaxLife  time.Duration `envconfig:"DB_MAX_LIFE" default:"30m"`

	StartingBalance      int64         `envconfig:"STARTING_BALANCE" default:"1000"`
	SettlementTimeout    time.Duration `envconfig:"SETTLEMENT_TIMEOUT" default:"5s"`
	IdempotencyCacheSize int           `envconfig:"IDEMPOTENCY_CACHE_SIZE" default:"10000"`
	IdempotencyTTL       time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	RTPReportSchedule    string        `envconfig:"RTP_REPORT_SCHEDULE" default:"@every 5m"`
	ShutdownTimeout      time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.Port <= 0 || c.Port > MaxPort {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBMaxConns <= 0 {
			return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when DB_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	if c.StartingBalance <= 0 {
		return fmt.Errorf("STARTING_BALANCE must be positive, got %d", c.StartingBalance)
	}
	if c.SettlementTimeout <= 0 {
		return fmt.Errorf("SETTLEMENT_TIMEOUT must be positive, got %s", c.SettlementTimeout)
	}
	if c.IdempotencyCacheSize <= 0 {
		return fmt.Errorf("IDEMPOTENCY_CACHE_SIZE must be positive, got %d", c.IdempotencyCacheSize)
	}
	if c.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive, got %s", c.IdempotencyTTL)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection URL with credentials escaped
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// IsProduction reports whether ENVIRONMENT names a production deployment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "prod" || env == "production"
}
