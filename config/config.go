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
	Atacadao   RetailerConfig
	Tenda      RetailerConfig
	Judge      JudgeConfig
	Cache      CacheConfig
	Matching   MatchingConfig
	Comparison ComparisonConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RetailerConfig holds one retailer catalog API configuration
type RetailerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// JudgeConfig holds the judgment-service (Gemini) configuration
type JudgeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds pipeline decision thresholds. MinConfidence is the
// single consolidated cross-catalog match threshold.
type MatchingConfig struct {
	MinConfidence      float64 `mapstructure:"min_confidence"`
	MinRelevance       float64 `mapstructure:"min_relevance"`
	ItemConcurrency    int     `mapstructure:"item_concurrency"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// ComparisonConfig holds batch-level settings
type ComparisonConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/precocerto/")

	// Environment variable settings
	v.SetEnvPrefix("PRECOCERTO")
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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Retailer defaults
	v.SetDefault("atacadao.base_url", "https://www.atacadao.com.br")
	v.SetDefault("atacadao.token", "")
	v.SetDefault("tenda.base_url", "https://api.tendaatacado.com.br")
	v.SetDefault("tenda.token", "")

	// Judge defaults. The empty api_key default registers the key so the
	// PRECOCERTO_JUDGE_API_KEY env var is picked up during Unmarshal.
	v.SetDefault("judge.api_key", "")
	v.SetDefault("judge.model", "gemini-2.0-flash")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	// Matching defaults
	v.SetDefault("matching.min_confidence", 0.6)
	v.SetDefault("matching.min_relevance", 0.6)
	v.SetDefault("matching.item_concurrency", 4)
	v.SetDefault("matching.enable_debug_logging", false)

	// Comparison defaults
	v.SetDefault("comparison.request_timeout", "90s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Judge.APIKey == "" {
		return fmt.Errorf("judge API key is required (set PRECOCERTO_JUDGE_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Matching.MinConfidence <= 0 || config.Matching.MinConfidence > 1 {
		return fmt.Errorf("matching.min_confidence must be in (0, 1], got: %v", config.Matching.MinConfidence)
	}

	if config.Matching.MinRelevance <= 0 || config.Matching.MinRelevance > 1 {
		return fmt.Errorf("matching.min_relevance must be in (0, 1], got: %v", config.Matching.MinRelevance)
	}

	return nil
}
