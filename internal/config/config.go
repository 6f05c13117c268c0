package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Compliance ComplianceConfig
	Audit      AuditConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
	Timezone string
}

// ComplianceConfig holds the working-time thresholds. These are passed
// explicitly into every evaluation; nothing reads them as ambient state.
type ComplianceConfig struct {
	MaxWeeklyHours    float64
	MinDailyRestHours float64
	StandardDayHours  float64
	ScanInterval      time.Duration
}

// AuditConfig holds retention settings for the audit trail.
type AuditConfig struct {
	RetentionDays  int
	SweepInterval  time.Duration
	SweepBatchSize int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timetrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
	}

	// Working-time thresholds (EU Working Time Directive defaults)
	maxWeekly, err := getEnvFloat("MAX_WEEKLY_HOURS", "48")
	if err != nil {
		return nil, err
	}
	minRest, err := getEnvFloat("MIN_DAILY_REST_HOURS", "11")
	if err != nil {
		return nil, err
	}
	standardDay, err := getEnvFloat("STANDARD_DAY_HOURS", "8")
	if err != nil {
		return nil, err
	}
	scanInterval, err := getEnvDuration("COMPLIANCE_SCAN_INTERVAL", "24h")
	if err != nil {
		return nil, err
	}

	config.Compliance = ComplianceConfig{
		MaxWeeklyHours:    maxWeekly,
		MinDailyRestHours: minRest,
		StandardDayHours:  standardDay,
		ScanInterval:      scanInterval,
	}

	// Audit retention
	retentionDays, err := strconv.Atoi(getEnv("AUDIT_RETENTION_DAYS", "180"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_RETENTION_DAYS: %w", err)
	}
	sweepInterval, err := getEnvDuration("AUDIT_SWEEP_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}
	sweepBatchSize, err := strconv.Atoi(getEnv("AUDIT_SWEEP_BATCH_SIZE", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_SWEEP_BATCH_SIZE: %w", err)
	}

	config.Audit = AuditConfig{
		RetentionDays:  retentionDays,
		SweepInterval:  sweepInterval,
		SweepBatchSize: sweepBatchSize,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Compliance.MaxWeeklyHours <= 0 {
		return fmt.Errorf("MAX_WEEKLY_HOURS must be positive")
	}
	if c.Compliance.MinDailyRestHours <= 0 {
		return fmt.Errorf("MIN_DAILY_REST_HOURS must be positive")
	}
	if c.Audit.RetentionDays <= 0 {
		return fmt.Errorf("AUDIT_RETENTION_DAYS must be positive")
	}
	if c.Audit.SweepBatchSize <= 0 {
		return fmt.Errorf("AUDIT_SWEEP_BATCH_SIZE must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key, fallback string) (float64, error) {
	value, err := strconv.ParseFloat(getEnv(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
