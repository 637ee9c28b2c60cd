package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Provider    ProviderConfig
	Recognition RecognitionConfig
	Cache       CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig selects the label analysis backend. It is read once at
// startup and treated as immutable for the process lifetime.
type ProviderConfig struct {
	Name           string `mapstructure:"name"` // "openai", "ocrspace", or "mock"
	APIKey         string `mapstructure:"api_key"`
	Endpoint       string `mapstructure:"endpoint"` // optional base URL override
	Model          string `mapstructure:"model"`
	EnableFallback bool   `mapstructure:"enable_fallback"`
}

// RecognitionConfig holds limits for the recognition pipeline
type RecognitionConfig struct {
	MaxImageBytes  int64         `mapstructure:"max_image_bytes"`
	AnalyzeTimeout time.Duration `mapstructure:"analyze_timeout"`
	Debug          bool          `mapstructure:"debug"`
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// providerNames are the accepted provider identifiers. An empty name means
// unconfigured, which behaves like "mock" (development fallback data).
var providerNames = map[string]bool{
	"":         true,
	"mock":     true,
	"openai":   true,
	"ocrspace": true,
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vinolens/")

	// Environment variable settings
	v.SetEnvPrefix("VINOLENS")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Provider defaults: unconfigured means deterministic mock data
	v.SetDefault("provider.name", "")
	v.SetDefault("provider.model", "gpt-4o-mini")
	v.SetDefault("provider.enable_fallback", true)

	// Recognition defaults
	v.SetDefault("recognition.max_image_bytes", 10*1024*1024) // 10 MiB
	v.SetDefault("recognition.analyze_timeout", "30s")
	v.SetDefault("recognition.debug", false)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	if !providerNames[config.Provider.Name] {
		return fmt.Errorf("unknown provider %q (expected openai, ocrspace, or mock)", config.Provider.Name)
	}

	if config.Recognition.MaxImageBytes <= 0 {
		return fmt.Errorf("recognition.max_image_bytes must be positive, got: %d", config.Recognition.MaxImageBytes)
	}

	if config.Recognition.AnalyzeTimeout <= 0 {
		return fmt.Errorf("recognition.analyze_timeout must be positive, got: %s", config.Recognition.AnalyzeTimeout)
	}

	// A missing API key for a real provider is not fatal here: the adapter
	// reports ErrProviderConfigInvalid at call time so the fallback path can
	// still serve development data when enable_fallback is set.
	return nil
}
