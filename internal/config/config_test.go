// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://127.0.0.1:9602", cfg.BackendURL)
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)
	assert.NotEmpty(t, cfg.FallbackReply)
	assert.NotEmpty(t, cfg.WelcomePrompt)
	assert.Empty(t, cfg.StorePath)
	assert.False(t, cfg.UI.ShowTimestamps)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https backend", func(c *Config) { c.BackendURL = "https://chizuko.example.com" }, false},
		{"bad scheme", func(c *Config) { c.BackendURL = "ftp://host" }, true},
		{"no host", func(c *Config) { c.BackendURL = "http://" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSecs = 0 }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeoutSecs = -5 }, true},
		{"empty fallback", func(c *Config) { c.FallbackReply = "" }, true},
		{"empty welcome", func(c *Config) { c.WelcomePrompt = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHIZUKO_BACKEND_URL", "http://10.0.0.5:9602")
	t.Setenv("CHIZUKO_REQUEST_TIMEOUT_SECS", "12")
	t.Setenv("CHIZUKO_FALLBACK_REPLY", "brb")
	t.Setenv("CHIZUKO_STORE_PATH", "/tmp/alt.db")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://10.0.0.5:9602", cfg.BackendURL)
	assert.Equal(t, 12, cfg.RequestTimeoutSecs)
	assert.Equal(t, "brb", cfg.FallbackReply)
	assert.Equal(t, "/tmp/alt.db", cfg.StorePath)
}

func TestEnvOverrideIgnoresBadTimeout(t *testing.T) {
	t.Setenv("CHIZUKO_REQUEST_TIMEOUT_SECS", "soon")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)

	t.Setenv("CHIZUKO_REQUEST_TIMEOUT_SECS", "-3")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)
}

func TestLoadTOMLPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `backend_url = "http://192.168.1.10:9602"

[ui]
show_timestamps = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://192.168.1.10:9602", cfg.BackendURL)
	assert.True(t, cfg.UI.ShowTimestamps)
	// Unspecified keys fall back to defaults.
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)
	assert.Equal(t, Default().FallbackReply, cfg.FallbackReply)
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"backend_url": "http://127.0.0.1:8080", "request_timeout_secs": 10}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.BackendURL)
	assert.Equal(t, 10, cfg.RequestTimeoutSecs)
}

func TestLoadExplicitZeroTimeoutRejected(t *testing.T) {
	// An explicit zero is a configuration error, not a request for the
	// default: the load must fail rather than silently substitute 30.
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`request_timeout_secs = 0`), 0600))

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "request_timeout_secs")
}

func TestLoadExplicitEmptyFallbackRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`fallback_reply = ""`), 0600))

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "fallback_reply")
}

func TestLoadInvalidFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`backend_url = "ftp://nope"`), 0600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.BackendURL = "http://chizuko.local:9602"
	cfg.UI.CompactMode = true
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://chizuko.local:9602", loaded.BackendURL)
	assert.True(t, loaded.UI.CompactMode)
	assert.Equal(t, cfg.FallbackReply, loaded.FallbackReply)
}

func TestGetSetRoundTrip(t *testing.T) {
	cfg := Default()

	for _, key := range Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "Get(%s)", key)
	}

	require.NoError(t, cfg.Set("backend_url", "http://other:9602"))
	v, _ := cfg.Get("backend_url")
	assert.Equal(t, "http://other:9602", v)

	require.NoError(t, cfg.Set("request_timeout_secs", "45"))
	assert.Equal(t, 45, cfg.RequestTimeoutSecs)

	require.NoError(t, cfg.Set("ui.compact_mode", "true"))
	assert.True(t, cfg.UI.CompactMode)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	cfg := Default()

	assert.Error(t, cfg.Set("backend_url", "not a url at all ://"))
	assert.Error(t, cfg.Set("request_timeout_secs", "fast"))
	assert.Error(t, cfg.Set("request_timeout_secs", "0"))
	assert.Error(t, cfg.Set("ui.show_timestamps", "yep"))
	assert.Error(t, cfg.Set("no_such_key", "x"))

	// A failed Set leaves the config untouched.
	assert.Equal(t, Default().BackendURL, cfg.BackendURL)
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)
}

func TestGetUnknownKey(t *testing.T) {
	cfg := Default()
	_, err := cfg.Get("bogus")
	assert.Error(t, err)
}

func TestRequestTimeoutDuration(t *testing.T) {
	cfg := Default()
	cfg.RequestTimeoutSecs = 7
	assert.Equal(t, "7s", cfg.RequestTimeout().String())
}
