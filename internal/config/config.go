package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/briangibbs/overwhelmed-tools/internal/ical"
	"github.com/briangibbs/overwhelmed-tools/internal/scheduler"
)

const (
	yamlName = "overwhelmed.yml"
	tomlName = "overwhelmed.toml"
)

// Config models overwhelmed.yml (or overwhelmed.toml).
type Config struct {
	Scheduler struct {
		Slots    []string `yaml:"slots" toml:"slots" json:"slots"`
		Timezone string   `yaml:"timezone" toml:"timezone" json:"timezone"`
	} `yaml:"scheduler" toml:"scheduler" json:"scheduler"`
	Calendar struct {
		ProductID    string `yaml:"product_id" toml:"product_id" json:"product_id"`
		EventMinutes int    `yaml:"event_minutes" toml:"event_minutes" json:"event_minutes"`
		FileBase     string `yaml:"file_base" toml:"file_base" json:"file_base"`
		UIDDomain    string `yaml:"uid_domain" toml:"uid_domain" json:"uid_domain"`
	} `yaml:"calendar" toml:"calendar" json:"calendar"`
	Server struct {
		Addr        string `yaml:"addr" toml:"addr" json:"addr"`
		BasePath    string `yaml:"base_path" toml:"base_path" json:"base_path"`
		DownloadTTL string `yaml:"download_ttl" toml:"download_ttl" json:"download_ttl"`
	} `yaml:"server" toml:"server" json:"server"`
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if err := scheduler.ValidateSlots(c.Scheduler.Slots); err != nil {
		return fmt.Errorf("config.scheduler.slots: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config.scheduler.timezone: %w", err)
	}
	if c.Calendar.ProductID == "" {
		return fmt.Errorf("config.calendar.product_id is required")
	}
	if c.Calendar.EventMinutes <= 0 {
		return fmt.Errorf("config.calendar.event_minutes must be positive")
	}
	if c.Calendar.FileBase == "" || strings.ContainsAny(c.Calendar.FileBase, `/\`) {
		return fmt.Errorf("config.calendar.file_base must be a plain file name")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("config.server.base_path must start with /")
	}
	if c.Server.DownloadTTL != "" {
		if ttl, err := time.ParseDuration(c.Server.DownloadTTL); err != nil || ttl <= 0 {
			return fmt.Errorf("config.server.download_ttl %q is not a positive duration", c.Server.DownloadTTL)
		}
	}
	return nil
}

// Location resolves the scheduler timezone. Empty and "Local" mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	switch c.Scheduler.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Scheduler.Timezone)
	}
}

// EventDuration is the length of every exported calendar event.
func (c *Config) EventDuration() time.Duration {
	return time.Duration(c.Calendar.EventMinutes) * time.Minute
}

// DownloadTTL is how long a calendar download ticket stays valid.
func (c *Config) DownloadTTL() time.Duration {
	ttl, err := time.ParseDuration(c.Server.DownloadTTL)
	if err != nil || ttl <= 0 {
		return 15 * time.Minute
	}
	return ttl
}

// CalendarOptions builds encoder options from the calendar section.
func (c *Config) CalendarOptions() (ical.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return ical.Options{}, err
	}
	return ical.Options{
		ProductID: c.Calendar.ProductID,
		Duration:  c.EventDuration(),
		Location:  loc,
		UIDDomain: c.Calendar.UIDDomain,
	}, nil
}

// Path returns the YAML config path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, yamlName)
}

// Load reads and validates config from workspace, preferring YAML over TOML.
func Load(workspace string) (*Config, error) {
	cfg, err := LoadOptional(workspace)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config %s not found; create one with ot config init", Path(workspace))
	}
	return cfg, nil
}

// LoadOptional returns nil,nil if no config file exists.
func LoadOptional(workspace string) (*Config, error) {
	if workspace == "" {
		workspace = "."
	}
	for _, name := range []string{yamlName, tomlName} {
		path := filepath.Join(workspace, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		return FromFile(path)
	}
	return nil, nil
}

// Default returns the default Config.
func Default() *Config {
	cfg, err := FromYAML([]byte(defaultTemplate))
	if err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// GenerateDefault returns default config YAML.
func GenerateDefault() string {
	return defaultTemplate
}

// FromYAML parses and validates config from raw YAML bytes. Missing keys keep
// their default values.
func FromYAML(data []byte) (*Config, error) {
	cfg := base()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromTOML parses and validates config from raw TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := base()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile reads config from path, choosing the format by extension.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FromTOML(data)
	}
	return FromYAML(data)
}

func base() *Config {
	var cfg Config
	cfg.Scheduler.Slots = append([]string(nil), scheduler.DefaultSlots...)
	cfg.Scheduler.Timezone = "Local"
	cfg.Calendar.ProductID = ical.DefaultProductID
	cfg.Calendar.EventMinutes = int(ical.DefaultDuration / time.Minute)
	cfg.Calendar.FileBase = ical.DefaultFileBase
	cfg.Calendar.UIDDomain = "overwhelmed-tools"
	cfg.Server.Addr = "127.0.0.1:8080"
	cfg.Server.BasePath = "/v0"
	cfg.Server.DownloadTTL = "15m"
	return &cfg
}

const defaultTemplate = `scheduler:
  # imported roadmap tasks fill these slots in order, one day per full round
  slots: ["09:00", "14:00"]
  timezone: Local

calendar:
  product_id: "-//AI Implementation Tasks//EN"
  event_minutes: 60
  file_base: ai-implementation-tasks
  uid_domain: overwhelmed-tools

server:
  addr: 127.0.0.1:8080
  base_path: /v0
  download_ttl: 15m
`
