package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo", "binance", or "mock"
		BaseURL  string `yaml:"base_url"`
	} `yaml:"data_source"`
	History struct {
		Days int `yaml:"days"`
	} `yaml:"history"`
	Backtest struct {
		Slippage float64 `yaml:"slippage"`
		Seed     int64   `yaml:"seed"` // 0 means seed from the clock at startup
	} `yaml:"backtest"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("QUOTE_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.History.Days = days
		}
	}
	if v := os.Getenv("BACKTEST_SLIPPAGE"); v != "" {
		if slip, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Backtest.Slippage = slip
		}
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.History.Days == 0 {
		cfg.History.Days = 365
	}
	if cfg.Backtest.Slippage == 0 {
		cfg.Backtest.Slippage = 0.002
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 0 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockcompass.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "binance", "mock":
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.History.Days < 2 {
		return fmt.Errorf("history.days must be at least 2")
	}
	if c.Backtest.Slippage < 0 {
		return fmt.Errorf("backtest.slippage must not be negative")
	}
	return nil
}
