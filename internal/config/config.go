package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Fetch struct {
		BaseURL     string        `yaml:"base_url"`
		Retries     int           `yaml:"retries"`
		MaxDelay    time.Duration `yaml:"max_delay"`
		Timeout     time.Duration `yaml:"timeout"`
		UserAgent   string        `yaml:"user_agent"`
		FallbackCSV string        `yaml:"fallback_csv"`
	} `yaml:"fetch"`
	Bundle struct {
		Python  string `yaml:"python"`
		NoCache *bool  `yaml:"no_cache"`
	} `yaml:"bundle"`
	Schedule struct {
		CheckCron string `yaml:"check_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// NoCache reports whether pinned installs bypass pip's cache (default true).
func (c *Config) NoCache() bool {
	return c.Bundle.NoCache == nil || *c.Bundle.NoCache
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("STOCKKIT_PYTHON"); v != "" {
		cfg.Bundle.Python = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_CHECK"); v != "" {
		cfg.Schedule.CheckCron = v
	}
	if v := os.Getenv("FETCH_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FETCH_RETRIES: %w", err)
		}
		cfg.Fetch.Retries = n
	}
	if v := os.Getenv("FETCH_MAX_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FETCH_MAX_DELAY: %w", err)
		}
		cfg.Fetch.MaxDelay = d
	}

	// Defaults
	if cfg.Fetch.Retries == 0 {
		cfg.Fetch.Retries = 3
	}
	if cfg.Fetch.MaxDelay == 0 {
		cfg.Fetch.MaxDelay = 10 * time.Second
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Bundle.Python == "" {
		cfg.Bundle.Python = "python3"
	}
	if cfg.Schedule.CheckCron == "" {
		cfg.Schedule.CheckCron = "0 0 9 * * *"
	}

	return cfg, nil
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.Fetch.Retries <= 0 {
		return fmt.Errorf("fetch.retries must be positive")
	}
	if c.Fetch.MaxDelay <= 0 {
		return fmt.Errorf("fetch.max_delay must be positive")
	}
	if c.Bundle.Python == "" {
		return fmt.Errorf("bundle.python is required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
