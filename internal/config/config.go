package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogLevel     string

	DBDriver          string
	DBConn            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	PoolStatsInterval time.Duration
}

// Load reads a .env file if one exists and then builds the configuration
// from the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", "127.0.0.1:8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBConn:     getEnv("DB_CONN", ""),
	}

	var err error
	if cfg.ReadTimeout, err = getDuration("READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getDuration("WRITE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns, err = getInt("PG__POOL__MAX_SIZE", 16); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 4); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PoolStatsInterval, err = getDuration("POOL_STATS_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		cfg.DBConn = buildDSN()
	}

	if cfg.ServerAddr == "" {
		return nil, fmt.Errorf("SERVER_ADDR is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "pgx" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or pgx, got %q", cfg.DBDriver)
	}
	if cfg.DBMaxOpenConns <= 0 {
		return nil, fmt.Errorf("PG__POOL__MAX_SIZE must be positive, got %d", cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns < 0 {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS must not be negative, got %d", cfg.DBMaxIdleConns)
	}
	if cfg.PoolStatsInterval <= 0 {
		return nil, fmt.Errorf("POOL_STATS_INTERVAL must be positive, got %s", cfg.PoolStatsInterval)
	}

	return cfg, nil
}

// buildDSN assembles a postgres:// URL from the PG__ variables; url escapes
// credentials so any character is allowed in the password.
func buildDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("PG__USER", "postgres"), getEnv("PG__PASSWORD", "postgres")),
		Host:     net.JoinHostPort(getEnv("PG__HOST", "localhost"), getEnv("PG__PORT", "5432")),
		Path:     "/" + getEnv("PG__DBNAME", "testing_db"),
		RawQuery: url.Values{"sslmode": {getEnv("PG__SSLMODE", "disable")}}.Encode(),
	}
	return u.String()
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
