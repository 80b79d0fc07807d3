// Package config loads the YAML configuration: crawler, schedule, server, database and output settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata" // timezone database for hosts without one

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Crawler  CrawlerConfig  `yaml:"crawler" json:"crawler" jsonschema:"description=Crawler configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Output   OutputConfig   `yaml:"output" json:"output" jsonschema:"description=Record output configuration"`
}

// CrawlerConfig holds listing traversal and fetch settings
type CrawlerConfig struct {
	StartURL   string        `yaml:"start_url" json:"start_url" jsonschema:"default=https://belta.by/all_news/,description=First listing page"`
	SiteRoot   string        `yaml:"site_root" json:"site_root" jsonschema:"default=https://belta.by,description=Base for resolving relative links"`
	Delay      time.Duration `yaml:"delay" json:"delay" jsonschema:"default=2s,description=Pause between consecutive requests"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per request timeout"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts per page"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Initial retry backoff"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	Prefilter  *bool         `yaml:"prefilter" json:"prefilter,omitempty" jsonschema:"default=true,description=Fetch only articles with matching listing title or snippet"`
	Timezone   string        `yaml:"timezone" json:"timezone" jsonschema:"default=Europe/Minsk,description=Timezone of the reference day"`
}

// ScheduleConfig holds periodic crawl settings
type ScheduleConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Run crawls periodically in server mode"`
	Cron       string `yaml:"cron" json:"cron" jsonschema:"default=*/30 * * * *,description=Crawl schedule in cron format"`
	RunOnStart bool   `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Crawl once right after start"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feed links"`
}

// DatabaseConfig holds record storage settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:appointwatch.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// OutputConfig holds the optional JSON lines record file
type OutputConfig struct {
	Path string `yaml:"path" json:"path" jsonschema:"description=JSON lines file records are appended to, disabled if empty"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file given
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	// crawler
	if cfg.Crawler.StartURL == "" {
		cfg.Crawler.StartURL = "https://belta.by/all_news/"
	}
	if cfg.Crawler.SiteRoot == "" {
		cfg.Crawler.SiteRoot = "https://belta.by"
	}
	if cfg.Crawler.Delay == 0 {
		cfg.Crawler.Delay = 2 * time.Second
	}
	if cfg.Crawler.Timeout == 0 {
		cfg.Crawler.Timeout = 30 * time.Second
	}
	if cfg.Crawler.Retries == 0 {
		cfg.Crawler.Retries = 3
	}
	if cfg.Crawler.RetryDelay == 0 {
		cfg.Crawler.RetryDelay = time.Second
	}
	if cfg.Crawler.Prefilter == nil {
		enabled := true
		cfg.Crawler.Prefilter = &enabled
	}
	if cfg.Crawler.Timezone == "" {
		cfg.Crawler.Timezone = "Europe/Minsk"
	}

	// schedule
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "*/30 * * * *"
	}

	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:appointwatch.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// crawler
	if err := validateURL(cfg.Crawler.StartURL); err != nil {
		return fmt.Errorf("crawler.start_url: %w", err)
	}
	if err := validateURL(cfg.Crawler.SiteRoot); err != nil {
		return fmt.Errorf("crawler.site_root: %w", err)
	}
	if cfg.Crawler.Delay < 0 {
		return errors.New("crawler delay must be non-negative")
	}
	if cfg.Crawler.Timeout < time.Second {
		return errors.New("crawler timeout must be at least 1 second")
	}
	if cfg.Crawler.Retries < 1 {
		return errors.New("crawler retries must be at least 1")
	}
	if _, err := time.LoadLocation(cfg.Crawler.Timezone); err != nil {
		return fmt.Errorf("crawler.timezone: %w", err)
	}

	// schedule
	if cfg.Schedule.Enabled {
		if _, err := cron.ParseStandard(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron %q: %w", cfg.Schedule.Cron, err)
		}
	}

	// server
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}

	return nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) url", s)
	}
	return nil
}

// Location returns the timezone of the reference day
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Crawler.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// PrefilterEnabled reports whether listing items are classified before their articles are fetched
func (c *Config) PrefilterEnabled() bool {
	return c.Crawler.Prefilter == nil || *c.Crawler.Prefilter
}

// SiteRootURL returns parsed crawler.site_root
func (c *Config) SiteRootURL() (*url.URL, error) {
	u, err := url.Parse(c.Crawler.SiteRoot)
	if err != nil {
		return nil, fmt.Errorf("parse site root %q: %w", c.Crawler.SiteRoot, err)
	}
	return u, nil
}
