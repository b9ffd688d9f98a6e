package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	MaxParallelDownloads  int     `json:"max_parallel_downloads"`
	RetryCount            int     `json:"retry_count"`
	AttemptTimeoutSeconds float64 `json:"attempt_timeout_seconds"`
	RetryCooldown         float64 `json:"retry_cooldown"`
	RetryExponent         float64 `json:"retry_exponent"`

	// ManifestPath is the path of the manifest resource relative to a
	// content base URL. Used by the CLI tools to build URL resolvers.
	ManifestPath string `json:"manifest_path"`

	// UserAgent is sent on every fetch request.
	UserAgent string `json:"user_agent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		MaxParallelDownloads:  4,
		RetryCount:            3,
		AttemptTimeoutSeconds: 30,
		RetryCooldown:         0.2,
		RetryExponent:         4.0,

		ManifestPath: "manifest.json",
		UserAgent:    "assetloader",
	}
}

// AttemptTimeout returns the per-attempt fetch timeout. The same timeout is
// reused for every retry of an attempt series.
func (s *Settings) AttemptTimeout() time.Duration {
	return time.Duration(s.AttemptTimeoutSeconds * float64(time.Second))
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
