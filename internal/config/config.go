// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Port                 int           `yaml:"port"`
	LogLevel             string        `yaml:"log_level"`
	LogPretty            bool          `yaml:"log_pretty"`
	DevMode              bool          `yaml:"dev_mode"` // Disables response compression
	CORSAllowedOrigins   []string      `yaml:"cors_allowed_origins"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	MaxBodyBytes         int64         `yaml:"max_body_bytes"`
	MaxSeriesLength      int           `yaml:"max_series_length"` // 0 = unlimited
	SystemSampleInterval time.Duration `yaml:"system_sample_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:                 8001,
		LogLevel:             "info",
		LogPretty:            true,
		DevMode:              false,
		CORSAllowedOrigins:   []string{"*"},
		RequestTimeout:       60 * time.Second,
		MaxBodyBytes:         8 << 20,
		MaxSeriesLength:      100000,
		SystemSampleInterval: 15 * time.Second,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE, a .env file and the process environment, in increasing
// order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	// Load .env file if it exists. Existing environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	if c.Port, err = getEnvAsInt("PORT", c.Port); err != nil {
		return err
	}
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if c.LogPretty, err = getEnvAsBool("LOG_PRETTY", c.LogPretty); err != nil {
		return err
	}
	if c.DevMode, err = getEnvAsBool("DEV_MODE", c.DevMode); err != nil {
		return err
	}
	c.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	if c.RequestTimeout, err = getEnvAsDuration("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	maxBody, err := getEnvAsInt("MAX_BODY_BYTES", int(c.MaxBodyBytes))
	if err != nil {
		return err
	}
	c.MaxBodyBytes = int64(maxBody)
	if c.MaxSeriesLength, err = getEnvAsInt("MAX_SERIES_LENGTH", c.MaxSeriesLength); err != nil {
		return err
	}
	if c.SystemSampleInterval, err = getEnvAsDuration("SYSTEM_SAMPLE_INTERVAL", c.SystemSampleInterval); err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max body bytes must not be negative, got %d", c.MaxBodyBytes)
	}
	if c.MaxSeriesLength < 0 {
		return fmt.Errorf("max series length must not be negative, got %d", c.MaxSeriesLength)
	}
	if c.SystemSampleInterval <= 0 {
		return fmt.Errorf("system sample interval must be positive, got %s", c.SystemSampleInterval)
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return errors.New("at least one CORS origin is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return intVal, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return boolVal, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvAsList reads a comma-separated value, dropping blank entries.
// An unset or all-blank value keeps the default.
func getEnvAsList(key string, defaultValue []string) []string {
	fields := strings.FieldsFunc(os.Getenv(key), func(r rune) bool { return r == ',' })
	list := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			list = append(list, f)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
