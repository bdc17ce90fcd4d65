package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App        AppConfig
	Storage    StorageConfig
	Reports    ReportConfig
	Processing ProcessingConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

type StorageConfig struct {
	BasePath string
}

// ReportConfig controls how long generated workbooks are kept
type ReportConfig struct {
	Retention     time.Duration
	PurgeInterval time.Duration
}

type ProcessingConfig struct {
	DefaultMaxHours  decimal.Decimal
	MaxUploadMB      int64
	LayoutFile       string
	BatchConcurrency int
}

// MaxUploadBytes is the per-file upload limit.
func (p ProcessingConfig) MaxUploadBytes() int64 {
	return p.MaxUploadMB << 20
}

func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.CORSAllowedOrigins) == 0 {
		config.App.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
	}

	// Report retention
	retention, err := time.ParseDuration(getEnv("REPORT_RETENTION", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_RETENTION: %w", err)
	}
	purgeInterval, err := time.ParseDuration(getEnv("REPORT_PURGE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_PURGE_INTERVAL: %w", err)
	}

	config.Reports = ReportConfig{
		Retention:     retention,
		PurgeInterval: purgeInterval,
	}

	// Processing configuration
	defaultMaxHours, err := decimal.NewFromString(getEnv("DEFAULT_MAX_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_MAX_HOURS: %w", err)
	}
	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}
	batchConcurrency, err := strconv.Atoi(getEnv("BATCH_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid BATCH_CONCURRENCY: %w", err)
	}

	config.Processing = ProcessingConfig{
		DefaultMaxHours:  defaultMaxHours,
		MaxUploadMB:      maxUploadMB,
		LayoutFile:       getEnv("LAYOUT_FILE", ""),
		BatchConcurrency: batchConcurrency,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if _, err := ParseLogLevel(c.App.LogLevel); err != nil {
		return err
	}
	if c.Storage.BasePath == "" {
		return fmt.Errorf("STORAGE_BASE_PATH is required")
	}
	if c.Reports.Retention <= 0 {
		return fmt.Errorf("REPORT_RETENTION must be positive")
	}
	if c.Reports.PurgeInterval <= 0 {
		return fmt.Errorf("REPORT_PURGE_INTERVAL must be positive")
	}
	if !c.Processing.DefaultMaxHours.IsPositive() || c.Processing.DefaultMaxHours.GreaterThan(decimal.NewFromInt(24)) {
		return fmt.Errorf("DEFAULT_MAX_HOURS must be greater than 0 and at most 24")
	}
	if c.Processing.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.Processing.BatchConcurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
