package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Spam       SpamConfig       `mapstructure:"spam"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type FetchConfig struct {
	UserAgent        string        `mapstructure:"user_agent"`
	Timeout          time.Duration `mapstructure:"timeout"`
	CloudflareBypass bool          `mapstructure:"cloudflare_bypass"`
}

type AnalysisConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// ClassifierConfig selects the sentiment backend: "local" runs an ONNX model
// in-process, "remote" posts to an inference endpoint, "openai" asks a chat model.
type ClassifierConfig struct {
	Backend      string        `mapstructure:"backend"`
	ModelName    string        `mapstructure:"model_name"`
	ModelDir     string        `mapstructure:"model_dir"`
	Endpoint     string        `mapstructure:"endpoint"`
	Timeout      time.Duration `mapstructure:"timeout"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
}

// CacheConfig holds the valkey prediction cache settings
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	TLS      bool          `mapstructure:"tls"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type SpamConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
	BackendOpenAI = "openai"
)

// Load reads configuration from defaults, an optional file and REVIEWLENS_*
// environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("REVIEWLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8765")

	v.SetDefault("fetch.user_agent", "Mozilla/5.0")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.cloudflare_bypass", false)

	v.SetDefault("analysis.timeout", "2m")

	v.SetDefault("classifier.backend", BackendLocal)
	v.SetDefault("classifier.model_name", "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english")
	v.SetDefault("classifier.model_dir", "./models")
	v.SetDefault("classifier.endpoint", "")
	v.SetDefault("classifier.timeout", "60s")
	v.SetDefault("classifier.openai_model", "gpt-4o-mini")
	v.SetDefault("classifier.openai_api_key", "")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "127.0.0.1:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.tls", false)
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("spam.threshold", -0.5)

	v.SetDefault("logging.level", "info")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if c.Fetch.UserAgent == "" {
		return fmt.Errorf("fetch.user_agent is required")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Analysis.Timeout < c.Fetch.Timeout {
		return fmt.Errorf("analysis.timeout must be at least fetch.timeout")
	}

	switch c.Classifier.Backend {
	case BackendLocal:
		if c.Classifier.ModelName == "" {
			return fmt.Errorf("classifier.model_name is required for the local backend")
		}
	case BackendRemote:
	case BackendOpenAI:
		if c.Classifier.OpenAIAPIKey == "" {
			return fmt.Errorf("classifier.openai_api_key is required for the openai backend")
		}
	default:
		return fmt.Errorf("classifier.backend must be one of: local, remote, openai")
	}

	if c.Cache.Enabled && c.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when cache is enabled")
	}

	if c.Spam.Threshold < -1.0 || c.Spam.Threshold > 1.0 {
		return fmt.Errorf("spam.threshold must be between -1.0 and 1.0")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}
