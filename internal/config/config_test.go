package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"hoard/internal/config"
)

func TestLoad_MissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if cfg.Backend != config.BackendFile {
		t.Errorf("expected default backend %q, got %q", config.BackendFile, cfg.Backend)
	}
	if cfg.SearchDebounceMS != 300 {
		t.Errorf("expected default debounce 300, got %d", cfg.SearchDebounceMS)
	}

	// The file was created with defaults.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected config file to be created")
	}
}

func TestLoad_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"backend":"sqlite"}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if cfg.Backend != config.BackendSQLite {
		t.Errorf("expected backend sqlite, got %q", cfg.Backend)
	}
	if cfg.ListenAddr == "" {
		t.Error("expected listen addr default to be applied")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.DataDir == "" {
		t.Error("expected data dir default to be applied")
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"backend":"carrier-pigeon"}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	want := config.DefaultConfig()
	want.Backend = config.BackendRedis
	want.Redis.Addr = "redis.internal:6379"
	want.Redis.DB = 3
	want.SearchDebounceMS = 150

	if err := config.Save(path, &want); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if got.Backend != config.BackendRedis {
		t.Errorf("expected backend redis, got %q", got.Backend)
	}
	if got.Redis.Addr != "redis.internal:6379" || got.Redis.DB != 3 {
		t.Errorf("redis settings did not round-trip: %+v", got.Redis)
	}
	if got.SearchDebounceMS != 150 {
		t.Errorf("expected debounce 150, got %d", got.SearchDebounceMS)
	}
}
