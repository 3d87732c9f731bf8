// Package config loads TaskFlow front-end settings from defaults, a TOML file, and the environment.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicolagi/taskflow"
	log "github.com/sirupsen/logrus"
)

// Config holds the settings shared by all front-ends.
type Config struct {
	// Base URL of the REST API.
	BaseURL string `toml:"base_url"`

	// If not empty, requests and responses are appended to this file.
	WireLog string `toml:"wire_log"`

	// Per-request timeout, in time.ParseDuration syntax.
	Timeout string `toml:"timeout"`

	// One of the logrus level names: debug, info, warning, error.
	LogLevel string `toml:"log_level"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		BaseURL:  taskflow.DefaultEndpoint,
		Timeout:  "10s",
		LogLevel: "info",
	}
}

// DefaultPath is where the user's config file is expected, lib/taskflow/config.toml in the home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "lib", "taskflow", "config.toml")
}

// Load returns the defaults, overridden by the file at path (if it exists), overridden by the environment.
// An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	loadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, key := range md.Undecoded() {
		log.WithFields(log.Fields{
			"path": path,
			"key":  key.String(),
		}).Warning("Ignoring unknown config key")
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_WIRE_LOG")); v != "" {
		cfg.WireLog = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_TIMEOUT")); v != "" {
		cfg.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks values that would otherwise only fail when first used.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if _, err := cfg.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (cfg *Config) TimeoutDuration() (time.Duration, error) {
	if cfg.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout: negative duration %v", d)
	}
	return d, nil
}

// ApplyLogLevel sets the level of the standard logrus logger.
func (cfg *Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	log.SetLevel(level)
	return nil
}

// ClientOptions translates the settings into options for taskflow.NewClient.
func (cfg *Config) ClientOptions() ([]taskflow.ClientOption, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []taskflow.ClientOption{
		taskflow.WithEndpoint(cfg.BaseURL),
		taskflow.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.WireLog != "" {
		opts = append(opts, taskflow.WithWireLog(cfg.WireLog))
	}
	return opts, nil
}

// NewClient is a shortcut for taskflow.NewClient with the options from ClientOptions.
func (cfg *Config) NewClient() (*taskflow.Client, error) {
	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}
	return taskflow.NewClient(opts...)
}
