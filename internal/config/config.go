package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Registry  RegistryConfig  `yaml:"registry"`
	Sync      SyncConfig      `yaml:"sync"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type RegistryConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	// Delay is the inter-case pause during an explicit sync-all request.
	Delay time.Duration `yaml:"delay"`
	// SweepDelay is the inter-case pause during a background update sweep.
	SweepDelay time.Duration `yaml:"sweep_delay"`
	// MaxFetchTries bounds retries of a temporary registry failure per case.
	MaxFetchTries int `yaml:"max_fetch_tries"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
	// DefaultLawyer is the owner id assumed when auth is disabled or the
	// server runs on stdio.
	DefaultLawyer string `yaml:"default_lawyer"`
	// MeteringEnabled controls whether syncs are charged against the ledger.
	MeteringEnabled bool `yaml:"metering_enabled"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "casewatch.db",
		},
		Registry: RegistryConfig{
			BaseURL: "https://consultaprocesos.ramajudicial.gov.co/api/v2",
			Timeout: 15 * time.Second,
		},
		Sync: SyncConfig{
			Delay:         300 * time.Millisecond,
			SweepDelay:    500 * time.Millisecond,
			MaxFetchTries: 3,
		},
		Auth: AuthConfig{
			Enabled:       false,
			DefaultLawyer: "default",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CASEWATCH_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CASEWATCH_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CASEWATCH_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CASEWATCH_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("CASEWATCH_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if baseURL := os.Getenv("CASEWATCH_REGISTRY_URL"); baseURL != "" {
		cfg.Registry.BaseURL = baseURL
	}
	if delayStr := os.Getenv("CASEWATCH_SYNC_DELAY"); delayStr != "" {
		delay, err := time.ParseDuration(delayStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CASEWATCH_SYNC_DELAY: %w", err)
		}
		cfg.Sync.Delay = delay
	}
	if mode := os.Getenv("CASEWATCH_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("CASEWATCH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Transport.Mode != "stdio" && cfg.Transport.Mode != "http" {
		return Config{}, fmt.Errorf("invalid transport mode %q", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
