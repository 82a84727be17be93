package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Scoring ScoringConfig `yaml:"scoring"`
	Redis   RedisConfig   `yaml:"redis"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GetHost returns the configured host, defaulting to localhost
func (s ServerConfig) GetHost() string {
	if s.Host == "" {
		return "localhost"
	}
	return s.Host
}

// DatasetConfig selects where the account dataset comes from.
// Source "generated" builds a seeded synthetic population; "file" loads a
// JSON snapshot with {"accounts": [...], "usage": [...]}.
type DatasetConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
	Seed   int64  `yaml:"seed"`
}

// ScoringConfig holds batch engine settings
type ScoringConfig struct {
	Workers int `yaml:"workers"`
}

// RedisConfig holds optional score cache settings
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Load reads configuration from a YAML file and fills in defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = "generated"
	}
	if cfg.Dataset.Seed == 0 {
		cfg.Dataset.Seed = 42
	}
	if cfg.Scoring.Workers == 0 {
		cfg.Scoring.Workers = 8
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = 300
	}

	return &cfg, nil
}

// LoadFromEnv loads the YAML config, then applies environment overrides.
// A .env file is honored when present.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if seed := os.Getenv("DATASET_SEED"); seed != "" {
		s, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DATASET_SEED %q: %w", seed, err)
		}
		cfg.Dataset.Seed = s
	}
	if snapshot := os.Getenv("DATASET_PATH"); snapshot != "" {
		cfg.Dataset.Source = "file"
		cfg.Dataset.Path = snapshot
	}

	return cfg, nil
}
