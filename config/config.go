package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Validation ValidationConfig
	Policy     PolicyConfig
	Store      StoreConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the reference catalog source configuration
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// ValidationConfig holds the engine's classification thresholds
type ValidationConfig struct {
	TopK                int     `mapstructure:"top_k"`
	PriceWarningPct     float64 `mapstructure:"price_warning_pct"`
	PriceHardStopPct    float64 `mapstructure:"price_hard_stop_pct"`
	AssertiveConfidence float64 `mapstructure:"assertive_confidence"`
}

// PolicyConfig holds the compliance lists for mandatory age verification.
// Empty lists fall back to the engine's built-in defaults.
type PolicyConfig struct {
	RestrictedCategories []string `mapstructure:"restricted_categories"`
	RestrictedKeywords   []string `mapstructure:"restricted_keywords"`
}

// StoreConfig holds submission persistence configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds the validation response cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfcheck/")

	// Environment variable settings
	v.SetEnvPrefix("SHELFCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.path", "ho_products.csv")
	v.SetDefault("catalog.watch", true)

	// Validation defaults
	v.SetDefault("validation.top_k", 15)
	v.SetDefault("validation.price_warning_pct", 0.25)
	v.SetDefault("validation.price_hard_stop_pct", 0.50)
	v.SetDefault("validation.assertive_confidence", 0.70)

	// Store defaults
	v.SetDefault("store.path", "submissions.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set SHELFCHECK_CATALOG_PATH)")
	}

	if config.Validation.TopK <= 0 {
		return fmt.Errorf("validation top_k must be positive, got: %d", config.Validation.TopK)
	}

	if config.Validation.PriceWarningPct <= 0 || config.Validation.PriceHardStopPct <= config.Validation.PriceWarningPct {
		return fmt.Errorf("price thresholds must satisfy 0 < warning < hard_stop, got: %.2f / %.2f",
			config.Validation.PriceWarningPct, config.Validation.PriceHardStopPct)
	}

	if config.Validation.AssertiveConfidence <= 0 || config.Validation.AssertiveConfidence > 1 {
		return fmt.Errorf("assertive_confidence must be in (0,1], got: %.2f", config.Validation.AssertiveConfidence)
	}

	return nil
}
