package config

import "time"

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported LOG_FORMAT values
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	// MaxPort is the highest TCP port accepted for PORT
	MaxPort = 65535

	// DefaultDBConnTimeout bounds the initial database ping at startup
	DefaultDBConnTimeout = 10 * time.Second
)

// Example values shipped in .env.example. Running with them is allowed but warned about.
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
