// Package config provides configuration management for assetloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Derived values such as the per-attempt timeout as a time.Duration
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 4 parallel downloads, 3 attempts, 30s per attempt
//
// Settings files are plain JSON; a missing file yields the defaults:
//
//	settings, err := config.Load("~/.config/assetloader/settings.json")
package config
