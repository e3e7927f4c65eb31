package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // DASHBOARD_TIMEZONE must resolve on hosts without zoneinfo
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Dashboard and data source configuration
	Dashboard DashboardConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// DashboardConfig holds settings for the admin users view
type DashboardConfig struct {
	SourceURL     string        // endpoint returning the users aggregate envelope
	SourceTimeout time.Duration // per-fetch timeout
	Timezone      string        // IANA zone used to render join dates
	MaxBatchSize  int           // maximum users accepted by POST /v1/users/batch
}

// LogConfig holds logging settings
type LogConfig struct {
	Level   string
	Format  string // "json" or "pretty"
	Service string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "user_dashboard"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Dashboard: DashboardConfig{
			SourceURL:     getEnv("SOURCE_URL", "http://localhost:"+port+"/v1/users"),
			SourceTimeout: getDurationEnv("SOURCE_TIMEOUT", 10*time.Second),
			Timezone:      getEnv("DASHBOARD_TIMEZONE", "Asia/Ho_Chi_Minh"),
			MaxBatchSize:  getIntEnv("MAX_BATCH_SIZE", 1000),
		},
		Log: LogConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getLogFormat(),
			Service: getEnv("SERVICE_NAME", "user-dashboard"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	u, err := url.Parse(c.Dashboard.SourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SOURCE_URL must be an absolute URL, got %q", c.Dashboard.SourceURL)
	}
	if c.Dashboard.SourceTimeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive")
	}
	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("DASHBOARD_TIMEZONE is invalid: %w", err)
	}
	return nil
}

// Location returns the display time zone, falling back to UTC
func (c *DashboardConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getLogFormat keeps ENV=development as a shortcut for pretty console output
func getLogFormat() string {
	if os.Getenv("ENV") == "development" {
		return "pretty"
	}
	return getEnv("LOG_FORMAT", "json")
}
