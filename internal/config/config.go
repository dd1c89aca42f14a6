// Package config loads application configuration from a JSON file,
// creating it with defaults on first run.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage backend names accepted in the config file.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Config holds application configuration.
type Config struct {
	Backend          string      `json:"backend"`
	DataDir          string      `json:"dataDir"`
	ListenAddr       string      `json:"listenAddr"`
	SearchDebounceMS int         `json:"searchDebounceMs"`
	LogLevel         string      `json:"logLevel"`
	PrettyLog        bool        `json:"prettyLog"`
	Redis            RedisConfig `json:"redis"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:          BackendFile,
		DataDir:          "", // resolved to DefaultDataDir at load time
		ListenAddr:       "127.0.0.1:7845",
		SearchDebounceMS: 300,
		LogLevel:         "info",
		PrettyLog:        true,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads config from the JSON file. Creates the file with defaults if
// it doesn't exist and fills in defaults for missing fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = Save(path, &config)
			return applyDefaults(&config)
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return applyDefaults(&config)
}

// applyDefaults fills missing fields and validates the backend name.
func applyDefaults(config *Config) (*Config, error) {
	defaults := DefaultConfig()

	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	switch config.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Backend)
	}

	if config.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		config.DataDir = dir
	}
	if config.ListenAddr == "" {
		config.ListenAddr = defaults.ListenAddr
	}
	if config.SearchDebounceMS <= 0 {
		config.SearchDebounceMS = defaults.SearchDebounceMS
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.Redis.Addr == "" {
		config.Redis.Addr = defaults.Redis.Addr
	}

	return config, nil
}

// Save writes config to the JSON file. Creates the directory if it doesn't
// exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/hoard/config.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "hoard", "config.json"), nil
}

// DefaultDataDir returns the default data directory: ~/.config/hoard
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "hoard"), nil
}
