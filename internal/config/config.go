package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/figures-review-go/internal/constants"
)

type Config struct {
	API     APIConfig
	Paging  PagingConfig
	Display DisplayConfig
	Session SessionConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PagingConfig struct {
	ReviewPageSize  int
	ListPageSize    int
	MonthlyPageSize int
}

type DisplayConfig struct {
	Timezone string
}

type SessionConfig struct {
	Enabled bool
	Name    string
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", constants.APIConfig.DefaultBaseURL), "/"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SECONDS", int(constants.APIConfig.DefaultTimeout/time.Second))) * time.Second,
		},
		Paging: PagingConfig{
			ReviewPageSize:  getEnvInt("REVIEW_PAGE_SIZE", constants.Paging.ReviewPageSize),
			ListPageSize:    getEnvInt("LIST_PAGE_SIZE", constants.Paging.ListPageSize),
			MonthlyPageSize: getEnvInt("MONTHLY_PAGE_SIZE", constants.Paging.MonthlyPageSize),
		},
		Display: DisplayConfig{
			Timezone: getEnv("DISPLAY_TIMEZONE", "UTC"),
		},
		Session: SessionConfig{
			Enabled: getEnvBool("SESSION_STORE_ENABLED", false),
			Name:    getEnv("SESSION_NAME", defaultSessionName()),
			TTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", int(constants.SessionConfig.DefaultTTL/time.Hour))) * time.Hour,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "logs/figures.log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must not be negative")
	}
	if c.Paging.ReviewPageSize <= 0 || c.Paging.ListPageSize <= 0 || c.Paging.MonthlyPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("DISPLAY_TIMEZONE %q is not a known location: %w", c.Display.Timezone, err)
	}
	if c.Session.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when SESSION_STORE_ENABLED is set")
	}
	return nil
}

// OverrideBaseURL applies a command-line base URL on top of the environment.
func (c *Config) OverrideBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	c.API.BaseURL = strings.TrimRight(raw, "/")
	return c.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func defaultSessionName() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "default"
}
