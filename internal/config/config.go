package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

type LoggingConfig struct {
	Level      string `json:"level"`
	OutputFile string `json:"output_file"`
	MaxSizeMB  int64  `json:"max_size_mb"`
	Console    bool   `json:"console"`
}

type Config struct {
	// DatabasePath is the on-disk database file; empty means in-memory.
	DatabasePath string `json:"database_path"`
	// DataDir is searched for <dataset>.csv files at load time.
	DataDir string        `json:"data_dir"`
	Logging LoggingConfig `json:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		DatabasePath: "data/datasets.db",
		DataDir:      "data",
		Logging: LoggingConfig{
			Level:     "INFO",
			MaxSizeMB: 10,
			Console:   true,
		},
	}
}

// LoadConfig returns the first readable config file from the platform search
// paths, falling back to defaults when none exists.
func LoadConfig() (*Config, error) {
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := loadConfigFromFile(path)
			if err != nil {
				continue
			}
			return cfg, nil
		}
	}

	return DefaultConfig(), nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("log max size must be positive")
	}
	return nil
}

func getConfigPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			paths = append(paths, filepath.Join(appData, "data-query", "config.json"))
		}
	default:
		homeDir := os.Getenv("HOME")
		if homeDir != "" {
			paths = append(paths, filepath.Join(homeDir, ".config", "data-query", "config.json"))
		}
	}

	if pwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(pwd, "config.json"))
	}

	return paths
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", path, err)
	}

	return cfg, nil
}
