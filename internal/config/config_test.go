package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "data/datasets.db", cfg.DatabasePath)
	require.Equal(t, "data", cfg.DataDir)
	require.True(t, cfg.Logging.Console)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_path": "",
		"data_dir": "seeds",
		"logging": {"level": "DEBUG", "max_size_mb": 5, "console": false}
	}`), 0644))

	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)
	require.Empty(t, cfg.DatabasePath)
	require.Equal(t, "seeds", cfg.DataDir)
	require.Equal(t, "DEBUG", cfg.Logging.Level)
	require.False(t, cfg.Logging.Console)
}

func TestLoadConfigFromFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data_dir": ""}`), 0644))

	_, err := loadConfigFromFile(path)
	require.Error(t, err)
}
