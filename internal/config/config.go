// Package config loads and validates the leadscout YAML configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"leadscout/internal/stepstone"
)

// Config is the root configuration for leadscout.
type Config struct {
	StorePath     string
	StepStone     StepStoneConfig
	Search        SearchConfig
	Research      ResearchConfig
	Sender        SenderConfig
	Notification  NotificationConfig
	Keywords      []string // overrides the built-in vocabulary when set
	WatchInterval time.Duration
}

// StepStoneConfig controls how the scraper talks to the job board.
type StepStoneConfig struct {
	BaseURL      string        // defaults to the public StepStone site
	PageDelay    time.Duration // minimum gap between page fetches
	FetchTimeout time.Duration // per-request timeout
}

// SearchConfig holds default search parameters for the search and watch
// commands.
type SearchConfig struct {
	Keywords    string
	Location    string
	Radius      int
	MaxPages    int
	DateFilter  int    // days; one of 1, 3, 7, 14, 30, or 0 for no filter
	TitleFilter string // only titles containing this substring
}

// ResearchConfig controls the optional company research layer.
type ResearchConfig struct {
	BaseURL string        // defaults to the public Perplexity API
	Model   string        // e.g. "sonar"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
	Retries int           // retry attempts on transient failures
}

// SenderConfig identifies the letter sender.
type SenderConfig struct {
	Name    string `yaml:"name"`
	Company string `yaml:"company"`
}

// NotificationConfig controls which notifier the watch command uses.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultStorePath     = "leadscout.db"
	defaultPageDelay     = 1 * time.Second
	defaultFetchTimeout  = 15 * time.Second
	defaultResearchModel = "sonar"
	defaultWatchInterval = 1 * time.Hour
	defaultMaxPages      = 3
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	StorePath     string             `yaml:"store_path"`
	StepStone     rawStepStoneConfig `yaml:"stepstone"`
	Search        rawSearchConfig    `yaml:"search"`
	Research      rawResearchConfig  `yaml:"research"`
	Sender        SenderConfig       `yaml:"sender"`
	Notification  NotificationConfig `yaml:"notification"`
	Keywords      []string           `yaml:"keywords"`
	WatchInterval string             `yaml:"watch_interval"`
}

type rawStepStoneConfig struct {
	BaseURL      string `yaml:"base_url"`
	PageDelay    string `yaml:"page_delay"`
	FetchTimeout string `yaml:"fetch_timeout"`
}

type rawSearchConfig struct {
	Keywords    string `yaml:"keywords"`
	Location    string `yaml:"location"`
	Radius      int    `yaml:"radius"`
	MaxPages    int    `yaml:"max_pages"`
	DateFilter  int    `yaml:"date_filter"`
	TitleFilter string `yaml:"title_filter"`
}

type rawResearchConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
	Retries *int   `yaml:"retries"`
}

// Default returns the configuration used when no config file exists. The
// research API key is still picked up from the environment.
func Default() *Config {
	return &Config{
		StorePath: defaultStorePath,
		StepStone: StepStoneConfig{
			BaseURL:      stepstone.DefaultBaseURL,
			PageDelay:    defaultPageDelay,
			FetchTimeout: defaultFetchTimeout,
		},
		Search: SearchConfig{
			MaxPages: defaultMaxPages,
		},
		Research: ResearchConfig{
			Model:   defaultResearchModel,
			APIKey:  os.Getenv("PERPLEXITY_API_KEY"),
			Timeout: 30 * time.Second,
			Retries: 2,
		},
		Notification:  NotificationConfig{Type: "log"},
		WatchInterval: defaultWatchInterval,
	}
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Unset fields fall back to the same defaults Default uses.
func Load(path string) (*Config, error) {
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

	cfg := Default()

	if raw.StorePath != "" {
		cfg.StorePath = raw.StorePath
	}
	if raw.StepStone.BaseURL != "" {
		cfg.StepStone.BaseURL = raw.StepStone.BaseURL
	}
	if raw.StepStone.PageDelay != "" {
		cfg.StepStone.PageDelay, err = time.ParseDuration(raw.StepStone.PageDelay)
		if err != nil {
			return nil, fmt.Errorf("parse stepstone.page_delay %q: %w", raw.StepStone.PageDelay, err)
		}
	}
	if raw.StepStone.FetchTimeout != "" {
		cfg.StepStone.FetchTimeout, err = time.ParseDuration(raw.StepStone.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse stepstone.fetch_timeout %q: %w", raw.StepStone.FetchTimeout, err)
		}
	}

	cfg.Search.Keywords = raw.Search.Keywords
	cfg.Search.Location = raw.Search.Location
	cfg.Search.Radius = raw.Search.Radius
	cfg.Search.DateFilter = raw.Search.DateFilter
	cfg.Search.TitleFilter = raw.Search.TitleFilter
	if raw.Search.MaxPages != 0 {
		cfg.Search.MaxPages = raw.Search.MaxPages
	}

	if raw.Research.BaseURL != "" {
		cfg.Research.BaseURL = raw.Research.BaseURL
	}
	if raw.Research.Model != "" {
		cfg.Research.Model = raw.Research.Model
	}
	if raw.Research.APIKey != "" {
		cfg.Research.APIKey = raw.Research.APIKey
	}
	if raw.Research.Timeout != "" {
		cfg.Research.Timeout, err = time.ParseDuration(raw.Research.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse research.timeout %q: %w", raw.Research.Timeout, err)
		}
	}
	if raw.Research.Retries != nil {
		cfg.Research.Retries = *raw.Research.Retries
	}

	cfg.Sender = raw.Sender
	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}
	cfg.Keywords = raw.Keywords

	if raw.WatchInterval != "" {
		cfg.WatchInterval, err = time.ParseDuration(raw.WatchInterval)
		if err != nil {
			return nil, fmt.Errorf("parse watch_interval %q: %w", raw.WatchInterval, err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.StorePath == "" {
		return fmt.Errorf("store_path must not be empty")
	}
	if cfg.StepStone.PageDelay < 0 {
		return fmt.Errorf("stepstone.page_delay must not be negative, got %v", cfg.StepStone.PageDelay)
	}
	if cfg.StepStone.FetchTimeout <= 0 {
		return fmt.Errorf("stepstone.fetch_timeout must be positive, got %v", cfg.StepStone.FetchTimeout)
	}

	if cfg.Search.MaxPages < 1 || cfg.Search.MaxPages > 3 {
		return fmt.Errorf("search.max_pages must be between 1 and 3, got %d", cfg.Search.MaxPages)
	}
	if !stepstone.ValidDateFilter(cfg.Search.DateFilter) {
		return fmt.Errorf("search.date_filter must be one of 1, 3, 7, 14, 30 (or 0), got %d", cfg.Search.DateFilter)
	}
	if cfg.Search.Radius < 0 {
		return fmt.Errorf("search.radius must not be negative, got %d", cfg.Search.Radius)
	}

	if cfg.Research.Timeout <= 0 {
		return fmt.Errorf("research.timeout must be positive, got %v", cfg.Research.Timeout)
	}
	if cfg.Research.Retries < 0 {
		return fmt.Errorf("research.retries must not be negative, got %d", cfg.Research.Retries)
	}

	switch cfg.Notification.Type {
	case "", "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	if cfg.WatchInterval < time.Minute {
		return fmt.Errorf("watch_interval must be at least 1m, got %v", cfg.WatchInterval)
	}

	return nil
}
