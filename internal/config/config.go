// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and management for
// super-chizuko.
//
// Supports both TOML and JSON formats, with sensible defaults, environment
// variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chizuko/config.toml
//   - ~/.chizuko/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/wonderxxxx/super-chizuko/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete super-chizuko configuration.
type Config struct {
	// BackendURL is the base URL of the Chizuko chat backend.
	BackendURL string `toml:"backend_url" json:"backend_url"`

	// RequestTimeoutSecs bounds each backend request. No retry is attempted;
	// on failure the fallback reply is substituted once.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`

	// FallbackReply is shown and persisted in place of a reply when the
	// backend call fails. It is stored exactly like a genuine reply.
	FallbackReply string `toml:"fallback_reply" json:"fallback_reply"`

	// WelcomePrompt is the hidden directive sent on a user's first-ever
	// session to elicit a greeting. It is never shown or persisted itself.
	WelcomePrompt string `toml:"welcome_prompt" json:"welcome_prompt"`

	// StorePath is the SQLite database path (empty = ~/.chizuko/chizuko.db).
	StorePath string `toml:"store_path" json:"store_path"`

	// UI configuration.
	UI UIConfig `toml:"ui" json:"ui"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// ShowTimestamps displays message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`

	// CompactMode reduces vertical spacing between messages.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// Default returns the built-in default configuration.
// The backend defaults match the reference deployment (port 9602).
func Default() *Config {
	return &Config{
		BackendURL:         "http://127.0.0.1:9602",
		RequestTimeoutSecs: 30,
		FallbackReply:      "抱歉，我现在有点忙，稍后再聊吧～",
		WelcomePrompt:      "（系统指令）用户第一次来找你聊天，请热情地打个招呼，介绍一下你自己。",
		StorePath:          "",
		UI: UIConfig{
			ShowTimestamps: false,
			CompactMode:    false,
		},
	}
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.chizuko).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chizuko"), nil
}

// ConfigPathTOML returns the path of the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path of the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, trying TOML first, then JSON, then
// defaults. Environment overrides and validation apply in every case.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	return finishLoad(cfg)
}

// LoadFromPath loads configuration from an explicit file path, picking the
// decoder by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return finishLoad(cfg)
}

// finishLoad applies env overrides and validates. Defaults are already in
// place: every load path decodes on top of Default(), so an absent key keeps
// its default while an explicitly bad value (zero timeout, empty fallback)
// reaches Validate and fails.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CHIZUKO_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHIZUKO_BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv("CHIZUKO_REQUEST_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.RequestTimeoutSecs = secs
		}
	}
	if v := os.Getenv("CHIZUKO_FALLBACK_REPLY"); v != "" {
		c.FallbackReply = v
	}
	if v := os.Getenv("CHIZUKO_WELCOME_PROMPT"); v != "" {
		c.WelcomePrompt = v
	}
	if v := os.Getenv("CHIZUKO_STORE_PATH"); v != "" {
		c.StorePath = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("backend_url has no host")
	}
	if c.RequestTimeoutSecs <= 0 {
		return fmt.Errorf("request_timeout_secs must be positive, got %d", c.RequestTimeoutSecs)
	}
	if c.FallbackReply == "" {
		return fmt.Errorf("fallback_reply must not be empty")
	}
	if c.WelcomePrompt == "" {
		return fmt.Errorf("welcome_prompt must not be empty")
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the TOML config path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path as TOML.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// KEY ACCESS (config get/set)
// =============================================================================

// Keys lists the keys addressable via Get and Set.
func Keys() []string {
	return []string{
		"backend_url",
		"request_timeout_secs",
		"fallback_reply",
		"welcome_prompt",
		"store_path",
		"ui.show_timestamps",
		"ui.compact_mode",
	}
}

// Get returns the value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend_url":
		return c.BackendURL, nil
	case "request_timeout_secs":
		return strconv.Itoa(c.RequestTimeoutSecs), nil
	case "fallback_reply":
		return c.FallbackReply, nil
	case "welcome_prompt":
		return c.WelcomePrompt, nil
	case "store_path":
		return c.StorePath, nil
	case "ui.show_timestamps":
		return strconv.FormatBool(c.UI.ShowTimestamps), nil
	case "ui.compact_mode":
		return strconv.FormatBool(c.UI.CompactMode), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set updates the value of a configuration key. The new value is validated
// in context before it is accepted.
func (c *Config) Set(key, value string) error {
	updated := *c
	switch key {
	case "backend_url":
		updated.BackendURL = value
	case "request_timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("request_timeout_secs must be an integer: %w", err)
		}
		updated.RequestTimeoutSecs = secs
	case "fallback_reply":
		updated.FallbackReply = value
	case "welcome_prompt":
		updated.WelcomePrompt = value
	case "store_path":
		updated.StorePath = value
	case "ui.show_timestamps":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.show_timestamps must be a boolean: %w", err)
		}
		updated.UI.ShowTimestamps = b
	case "ui.compact_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.compact_mode must be a boolean: %w", err)
		}
		updated.UI.CompactMode = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}
