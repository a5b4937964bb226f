// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort      = 8080
	defaultAPIToken  = "dev-token"
	defaultDataDir   = "./data"
	defaultCacheDays = 30
	defaultResultTTL = 60 // minutes
)

// Config holds application configuration.
// Values are resolved in order: defaults, optional YAML file, environment.
type Config struct {
	Port             int      `yaml:"port"`
	APIToken         string   `yaml:"api_token"`
	LogLevel         string   `yaml:"log_level"`
	LogPretty        bool     `yaml:"log_pretty"`
	DataDir          string   `yaml:"data_dir"`
	CacheMaxAgeDays  int      `yaml:"cache_max_age_days"`
	ResultTTLMinutes int      `yaml:"result_ttl_minutes"`
	AllowedOrigins   []string `yaml:"allowed_origins"`

	Alpaca AlpacaConfig `yaml:"alpaca"`
}

// AlpacaConfig holds market data provider credentials.
// Empty values fall back to the APCA_* variables the SDK reads itself.
type AlpacaConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
}

// Load reads configuration from the optional YAML file named by
// DCASIM_CONFIG, then applies environment variable overrides
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             defaultPort,
		APIToken:         defaultAPIToken,
		LogLevel:         "info",
		DataDir:          defaultDataDir,
		CacheMaxAgeDays:  defaultCacheDays,
		ResultTTLMinutes: defaultResultTTL,
		AllowedOrigins:   []string{"*"},
	}

	if path := os.Getenv("DCASIM_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// Resolve the data directory to an absolute path and make sure it exists
	absDataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	cfg.DataDir = absDataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges a YAML config file into the current values
func (c *Config) loadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides configuration from environment variables
func (c *Config) applyEnv() {
	c.Port = getEnvAsInt("DCASIM_PORT", c.Port)
	c.APIToken = getEnv("DCASIM_API_TOKEN", c.APIToken)
	c.LogLevel = getEnv("DCASIM_LOG_LEVEL", c.LogLevel)
	c.LogPretty = getEnvAsBool("DCASIM_LOG_PRETTY", c.LogPretty)
	c.DataDir = getEnv("DCASIM_DATA_DIR", c.DataDir)
	c.CacheMaxAgeDays = getEnvAsInt("DCASIM_CACHE_MAX_AGE_DAYS", c.CacheMaxAgeDays)
	c.ResultTTLMinutes = getEnvAsInt("DCASIM_RESULT_TTL_MINUTES", c.ResultTTLMinutes)

	if origins := os.Getenv("DCASIM_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c.AllowedOrigins = parts
	}

	c.Alpaca.APIKey = getEnv("APCA_API_KEY_ID", c.Alpaca.APIKey)
	c.Alpaca.APISecret = getEnv("APCA_API_SECRET_KEY", c.Alpaca.APISecret)
	c.Alpaca.BaseURL = getEnv("APCA_API_BASE_URL", c.Alpaca.BaseURL)
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.APIToken == "" {
		return errors.New("api token cannot be empty")
	}
	if c.CacheMaxAgeDays < 0 {
		return fmt.Errorf("cache max age cannot be negative, got %d", c.CacheMaxAgeDays)
	}
	if c.ResultTTLMinutes < 1 {
		return fmt.Errorf("result ttl must be at least one minute, got %d", c.ResultTTLMinutes)
	}
	return nil
}

// CachePath returns the location of the price cache database
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "prices.db")
}

// CacheMaxAge returns the maximum age of a cache entry before purge
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.CacheMaxAgeDays) * 24 * time.Hour
}

// ResultTTL returns how long finished comparison results stay retrievable
func (c *Config) ResultTTL() time.Duration {
	return time.Duration(c.ResultTTLMinutes) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
