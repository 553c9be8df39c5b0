package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port    int  `yaml:"port"`
		DevMode bool `yaml:"dev_mode"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string        `yaml:"base_url"`
		Proxy   string        `yaml:"proxy"`
		Timeout time.Duration `yaml:"timeout"` // 0 = no timeout
	} `yaml:"data_source"`
	Dataset struct {
		PricesCSV        string `yaml:"prices_csv"`
		ChangePointsFile string `yaml:"change_points_file"`
		EventsCSV        string `yaml:"events_csv"`
		SQLitePath       string `yaml:"sqlite_path"`
		RefreshCron      string `yaml:"refresh_cron"`
	} `yaml:"dataset"`
	Chart struct {
		SeriesLabel      string  `yaml:"series_label"`
		OutlierThreshold *float64 `yaml:"outlier_threshold"` // unset = 0.1, 0 = off
		RollingWindow    int      `yaml:"rolling_window"`
		EventWindowDays  int      `yaml:"event_window_days"`
	} `yaml:"chart"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: defaults and the environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("REGIMEBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REGIMEBOARD_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("REGIMEBOARD_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("PRICES_CSV"); v != "" {
		cfg.Dataset.PricesCSV = v
	}
	if v := os.Getenv("CHANGE_POINTS_FILE"); v != "" {
		cfg.Dataset.ChangePointsFile = v
	}
	if v := os.Getenv("EVENTS_CSV"); v != "" {
		cfg.Dataset.EventsCSV = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Dataset.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Dataset.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Chart.SeriesLabel == "" {
		cfg.Chart.SeriesLabel = "Brent Oil Price"
	}
	if cfg.Chart.OutlierThreshold == nil {
		threshold := 0.1
		cfg.Chart.OutlierThreshold = &threshold
	}
	if cfg.Chart.EventWindowDays == 0 {
		cfg.Chart.EventWindowDays = 30
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// Validate checks ranges and that the backend has somewhere to read datasets from.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if c.Chart.OutlierThreshold != nil && *c.Chart.OutlierThreshold < 0 {
		return fmt.Errorf("chart.outlier_threshold must not be negative")
	}
	if c.Chart.EventWindowDays < 0 {
		return fmt.Errorf("chart.event_window_days must not be negative")
	}
	if c.Chart.RollingWindow < 0 {
		return fmt.Errorf("chart.rolling_window must not be negative")
	}
	if c.Dataset.RefreshCron != "" {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Dataset.RefreshCron); err != nil {
			return fmt.Errorf("dataset.refresh_cron: %w", err)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	return nil
}

// ValidateBackend checks the dataset settings needed to serve the API.
func (c *Config) ValidateBackend() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Dataset.SQLitePath == "" && c.Dataset.PricesCSV == "" {
		return fmt.Errorf("dataset.prices_csv or dataset.sqlite_path is required")
	}
	return nil
}
