package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL     string
	ServerAddr      string
	MigrationsDir   string
	EscrowBridgeURL string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "trade_hub")
		pass := getenv("POSTGRES_PASSWORD", "trade_hub_pass")
		db := getenv("POSTGRES_DB", "trade_hub")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	return &Config{
		DatabaseURL:     dsn,
		ServerAddr:      getenv("SERVER_ADDR", "0.0.0.0:8080"),
		MigrationsDir:   getenv("MIGRATIONS_DIR", "internal/migrations"),
		EscrowBridgeURL: os.Getenv("ESCROW_BRIDGE_URL"),
		ShutdownTimeout: parseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
