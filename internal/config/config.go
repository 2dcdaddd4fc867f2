package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for vacstat.
type Config struct {
	RefreshInterval time.Duration // how often `watch` reruns the pipeline
	Employers       []string      // roster of employer names to ingest
	Source          SourceConfig
	Database        DatabaseConfig
}

// SourceConfig controls access to the vacancy listing API.
type SourceConfig struct {
	BaseURL  string        // API root, e.g. https://api.hh.ru
	PerPage  int           // page size per employer request (API max: 100)
	Timeout  time.Duration // per-request HTTP timeout
	MinDelay time.Duration // minimum gap between consecutive API requests
}

// DatabaseConfig selects the store driver and its connection settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "postgres" or "sqlite"
	DSN    string `yaml:"dsn"`    // postgres URL, or file path for sqlite
	Table  string `yaml:"table"`  // vacancy table name
}

const (
	defaultBaseURL  = "https://api.hh.ru"
	defaultPerPage  = 100
	defaultTable    = "vacancy_info"
	defaultTimeout  = 30 * time.Second
	defaultMinDelay = 250 * time.Millisecond
	defaultInterval = 6 * time.Hour
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	RefreshInterval string          `yaml:"refresh_interval"`
	Employers       []string        `yaml:"employers"`
	Source          rawSourceConfig `yaml:"source"`
	Database        DatabaseConfig  `yaml:"database"`
}

type rawSourceConfig struct {
	BaseURL  string `yaml:"base_url"`
	PerPage  int    `yaml:"per_page"`
	Timeout  string `yaml:"timeout"`
	MinDelay string `yaml:"min_delay"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. A .env file next to the working directory is loaded first
// so credentials can be referenced as ${VAR} inside the YAML.
func Load(path string) (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := defaultInterval
	if raw.RefreshInterval != "" {
		interval, err = time.ParseDuration(raw.RefreshInterval)
		if err != nil {
			return nil, fmt.Errorf("parse refresh_interval %q: %w", raw.RefreshInterval, err)
		}
	}

	timeout := defaultTimeout
	if raw.Source.Timeout != "" {
		timeout, err = time.ParseDuration(raw.Source.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse source.timeout %q: %w", raw.Source.Timeout, err)
		}
	}

	minDelay := defaultMinDelay
	if raw.Source.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.Source.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse source.min_delay %q: %w", raw.Source.MinDelay, err)
		}
	}

	baseURL := raw.Source.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	perPage := raw.Source.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}

	db := raw.Database
	if db.Driver == "" {
		db.Driver = "sqlite"
	}
	if db.DSN == "" && db.Driver == "sqlite" {
		db.DSN = "vacancies.db"
	}
	if db.Table == "" {
		db.Table = defaultTable
	}

	cfg := &Config{
		RefreshInterval: interval,
		Employers:       raw.Employers,
		Source: SourceConfig{
			BaseURL:  baseURL,
			PerPage:  perPage,
			Timeout:  timeout,
			MinDelay: minDelay,
		},
		Database: db,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %v", cfg.RefreshInterval)
	}
	if len(cfg.Employers) == 0 {
		return fmt.Errorf("at least one employer is required")
	}
	for i, e := range cfg.Employers {
		if e == "" {
			return fmt.Errorf("employers[%d] is empty", i)
		}
	}

	if cfg.Source.PerPage < 1 || cfg.Source.PerPage > 100 {
		return fmt.Errorf("source.per_page must be between 1 and 100, got %d", cfg.Source.PerPage)
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be \"postgres\" or \"sqlite\", got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when driver is %q", cfg.Database.Driver)
	}

	return nil
}
