// Package config loads runtime settings from a YAML, TOML or JSON file, an
// optional .env file and FOLIO_* environment variables, in that order of
// precedence (environment wins).
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Server  Server  `yaml:"server" toml:"server" json:"server"`
	Contact Contact `yaml:"contact" toml:"contact" json:"contact"`
	Content Content `yaml:"content" toml:"content" json:"content"`
	Theme   Theme   `yaml:"theme" toml:"theme" json:"theme"`
	Log     Log     `yaml:"log" toml:"log" json:"log"`
}

type Server struct {
	Addr              string   `yaml:"addr" toml:"addr" json:"addr"`
	ReadHeaderTimeout Duration `yaml:"readHeaderTimeout" toml:"readHeaderTimeout" json:"readHeaderTimeout"`
	ShutdownTimeout   Duration `yaml:"shutdownTimeout" toml:"shutdownTimeout" json:"shutdownTimeout"`
	AllowedOrigins    []string `yaml:"allowedOrigins" toml:"allowedOrigins" json:"allowedOrigins"`
	// CVPath is a file served at /cv. Empty disables the route.
	CVPath string `yaml:"cvPath" toml:"cvPath" json:"cvPath"`
	// Metrics toggles /metrics.
	Metrics bool `yaml:"metrics" toml:"metrics" json:"metrics"`
}

type Contact struct {
	// Delay is the simulated latency of the mock sender.
	Delay Duration `yaml:"delay" toml:"delay" json:"delay"`
	// WebhookURL switches from the mock sender to an HTTP POST.
	WebhookURL string   `yaml:"webhookUrl" toml:"webhookUrl" json:"webhookUrl"`
	Timeout    Duration `yaml:"timeout" toml:"timeout" json:"timeout"`
	// RatePerMinute limits accepted submissions per client; 0 disables it.
	RatePerMinute float64 `yaml:"ratePerMinute" toml:"ratePerMinute" json:"ratePerMinute"`
	Burst         int     `yaml:"burst" toml:"burst" json:"burst"`
	MaxBodyBytes  int64   `yaml:"maxBodyBytes" toml:"maxBodyBytes" json:"maxBodyBytes"`
}

type Content struct {
	// Path overrides the embedded portfolio content.
	Path string `yaml:"path" toml:"path" json:"path"`
	// ContractPath overrides the embedded contact contract.
	ContractPath string `yaml:"contractPath" toml:"contractPath" json:"contractPath"`
}

type Theme struct {
	Name    string `yaml:"name" toml:"name" json:"name"`
	Variant string `yaml:"variant" toml:"variant" json:"variant"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration(5 * time.Second),
			ShutdownTimeout:   Duration(10 * time.Second),
			Metrics:           true,
		},
		Contact: Contact{
			Delay:         Duration(time.Second),
			Timeout:       Duration(10 * time.Second),
			RatePerMinute: 6,
			Burst:         3,
			MaxBodyBytes:  64 << 10,
		},
		Theme: Theme{Name: "folio"},
		Log:   Log{Level: "info", Format: "text"},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	lookup   func(string) (string, bool)
	dotEnv   []string
	optional bool
}

// WithLookup replaces os.LookupEnv for environment overrides.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if lookup != nil {
			o.lookup = lookup
		}
	}
}

// WithDotEnv loads the given .env files before reading overrides. Missing
// files are skipped.
func WithDotEnv(paths ...string) Option {
	return func(o *loadOptions) {
		o.dotEnv = append(o.dotEnv, paths...)
	}
}

// Load builds a Config from defaults, the file at path (optional), .env files
// and the environment.
func Load(path string, options ...Option) (Config, error) {
	opts := loadOptions{lookup: os.LookupEnv}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(data, filepath.Ext(path), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	for _, file := range opts.dotEnv {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	if err := applyEnv(&cfg, opts.lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if value, ok := lookup(key); ok {
			*dst = strings.TrimSpace(value)
		}
	}
	str("FOLIO_ADDR", &cfg.Server.Addr)
	str("FOLIO_CV_PATH", &cfg.Server.CVPath)
	str("FOLIO_CONTACT_WEBHOOK_URL", &cfg.Contact.WebhookURL)
	str("FOLIO_CONTENT_PATH", &cfg.Content.Path)
	str("FOLIO_CONTRACT_PATH", &cfg.Content.ContractPath)
	str("FOLIO_THEME", &cfg.Theme.Name)
	str("FOLIO_THEME_VARIANT", &cfg.Theme.Variant)
	str("FOLIO_LOG_LEVEL", &cfg.Log.Level)
	str("FOLIO_LOG_FORMAT", &cfg.Log.Format)

	if value, ok := lookup("FOLIO_ALLOWED_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = splitList(value)
	}
	if value, ok := lookup("FOLIO_METRICS"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: FOLIO_METRICS: %w", err)
		}
		cfg.Server.Metrics = enabled
	}

	durations := map[string]*Duration{
		"FOLIO_CONTACT_DELAY":    &cfg.Contact.Delay,
		"FOLIO_CONTACT_TIMEOUT":  &cfg.Contact.Timeout,
		"FOLIO_SHUTDOWN_TIMEOUT": &cfg.Server.ShutdownTimeout,
	}
	for key, dst := range durations {
		if value, ok := lookup(key); ok {
			if err := dst.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
		}
	}

	if value, ok := lookup("FOLIO_CONTACT_RATE_PER_MINUTE"); ok {
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("config: FOLIO_CONTACT_RATE_PER_MINUTE: %w", err)
		}
		cfg.Contact.RatePerMinute = rate
	}
	if value, ok := lookup("FOLIO_CONTACT_BURST"); ok {
		burst, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: FOLIO_CONTACT_BURST: %w", err)
		}
		cfg.Contact.Burst = burst
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Server.Addr) == "":
		return errors.New("config: server.addr is required")
	case c.Contact.Delay < 0:
		return errors.New("config: contact.delay must not be negative")
	case c.Contact.Timeout <= 0:
		return errors.New("config: contact.timeout must be positive")
	case c.Contact.RatePerMinute < 0:
		return errors.New("config: contact.ratePerMinute must not be negative")
	case c.Contact.RatePerMinute > 0 && c.Contact.Burst < 1:
		return errors.New("config: contact.burst must be at least 1 when rate limiting")
	case c.Contact.MaxBodyBytes <= 0:
		return errors.New("config: contact.maxBodyBytes must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level; empty means info.
func (l Log) SlogLevel() (slog.Level, error) {
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
