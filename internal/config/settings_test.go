package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MaxParallelDownloads <= 0 {
		t.Error("MaxParallelDownloads should be positive")
	}
	if s.RetryCount <= 0 {
		t.Error("RetryCount should be positive")
	}
	if s.AttemptTimeout() != 30*time.Second {
		t.Errorf("AttemptTimeout() = %v, want 30s", s.AttemptTimeout())
	}
	if s.ManifestPath == "" {
		t.Error("ManifestPath should have a default")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MaxParallelDownloads != DefaultSettings().MaxParallelDownloads {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := DefaultSettings()
	s.MaxParallelDownloads = 9
	s.RetryCount = 5
	s.AttemptTimeoutSeconds = 2.5

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.MaxParallelDownloads != 9 {
		t.Errorf("MaxParallelDownloads = %d, want 9", loaded.MaxParallelDownloads)
	}
	if loaded.RetryCount != 5 {
		t.Errorf("RetryCount = %d, want 5", loaded.RetryCount)
	}
	if loaded.AttemptTimeout() != 2500*time.Millisecond {
		t.Errorf("AttemptTimeout() = %v, want 2.5s", loaded.AttemptTimeout())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := DefaultSettings()
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Overwrite with garbage
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
