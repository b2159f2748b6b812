package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

const (
	defaultPlannerDelay = 3 * time.Second
	defaultPlanRate     = 6
	defaultLogLevel     = "info"
)

// Config keeps runtime settings for the planner.
type Config struct {
	TelegramToken     string
	PlannerDelay      time.Duration
	PromptTime        string
	PlanRatePerMinute int
	LogLevel          string
	LogFile           string
}

// fileConfig mirrors Config in the optional YAML file.
type fileConfig struct {
	TelegramToken     string `yaml:"telegram_token"`
	PlannerDelay      string `yaml:"planner_delay"`
	PromptTime        string `yaml:"prompt_time"`
	PlanRatePerMinute int    `yaml:"plan_rate_per_minute"`
	LogLevel          string `yaml:"log_level"`
	LogFile           string `yaml:"log_file"`
}

// Load reads configuration from the YAML file named by PLANNER_CONFIG (if
// any), then from environment variables, with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		PlannerDelay:      defaultPlannerDelay,
		PlanRatePerMinute: defaultPlanRate,
		LogLevel:          defaultLogLevel,
	}

	if path := env("PLANNER_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if v := env("TELEGRAM_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := env("PLANNER_DELAY"); v != "" {
		d, err := parseDelay(v)
		if err != nil {
			return cfg, fmt.Errorf("PLANNER_DELAY: %w", err)
		}
		cfg.PlannerDelay = d
	}
	if v, ok := os.LookupEnv("PROMPT_TIME"); ok {
		cfg.PromptTime = strings.TrimSpace(v)
	}
	if v := env("PLAN_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("PLAN_RATE_PER_MINUTE must be a positive integer, got %q", v)
		}
		cfg.PlanRatePerMinute = n
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := env("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg, nil
}

// ValidateBot checks the settings only the Telegram bot needs.
func (c Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if fc.TelegramToken != "" {
		cfg.TelegramToken = strings.TrimSpace(fc.TelegramToken)
	}
	if fc.PlannerDelay != "" {
		d, err := parseDelay(fc.PlannerDelay)
		if err != nil {
			return fmt.Errorf("config %q: planner_delay: %w", path, err)
		}
		cfg.PlannerDelay = d
	}
	if fc.PromptTime != "" {
		cfg.PromptTime = strings.TrimSpace(fc.PromptTime)
	}
	if fc.PlanRatePerMinute < 0 {
		return fmt.Errorf("config %q: plan_rate_per_minute must not be negative", path)
	}
	if fc.PlanRatePerMinute > 0 {
		cfg.PlanRatePerMinute = fc.PlanRatePerMinute
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	return nil
}

func parseDelay(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("delay must not be negative, got %s", d)
	}
	return d, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
