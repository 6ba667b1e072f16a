// Package config provides configuration loading for the M5250 router exporter.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/m5250-dashboard/exporter/router"
)

// Config holds the application configuration.
type Config struct {
	// Router connection settings
	Router RouterConfig `yaml:"router"`

	// Metrics server configuration
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`
}

// RouterConfig holds router connection settings.
type RouterConfig struct {
	// URL is the base URL of the router web UI
	URL string `yaml:"url"`

	// Login for the web UI (device factory default: admin)
	Login string `yaml:"login"`

	// Password for the web UI (device factory default: admin)
	Password string `yaml:"password"`

	// Timeout for router requests
	Timeout time.Duration `yaml:"timeout"`
}

// MetricsConfig holds Prometheus metrics server settings.
type MetricsConfig struct {
	// Port to serve metrics on
	Port int `yaml:"port"`

	// Path for metrics endpoint
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	rc := router.DefaultConfig()
	return Config{
		Router: RouterConfig{
			URL:      rc.URL,
			Login:    rc.Login,
			Password: rc.Password,
			Timeout:  rc.Timeout,
		},
		Metrics: MetricsConfig{
			Port: 9252,
			Path: "/metrics",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// Environment variables override values from the config file.
func LoadConfigFromEnv(cfg *Config) {
	if url := os.Getenv("M5250_ROUTER_URL"); url != "" {
		cfg.Router.URL = url
	}

	if login := os.Getenv("M5250_ROUTER_LOGIN"); login != "" {
		cfg.Router.Login = login
	}

	if password := os.Getenv("M5250_ROUTER_PASSWORD"); password != "" {
		cfg.Router.Password = password
	}

	if timeout := os.Getenv("M5250_ROUTER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Router.Timeout = d
		}
	}

	if port := os.Getenv("M5250_METRICS_PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			cfg.Metrics.Port = p
		}
	}

	if level := os.Getenv("M5250_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// ToClientConfig converts the config to a router.ClientConfig.
func (c *Config) ToClientConfig() router.ClientConfig {
	return router.ClientConfig{
		URL:      c.Router.URL,
		Login:    c.Router.Login,
		Password: c.Router.Password,
		Timeout:  c.Router.Timeout,
	}
}
