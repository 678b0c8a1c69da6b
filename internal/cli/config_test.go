package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
	// keep a project-local history
	"history_file": "/tmp/sheet_history",
	"max_rows": 500, // trailing commas are fine too
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sheet_history", cfg.HistoryFile)
	assert.Equal(t, uint32(500), cfg.MaxRows)
	// unset keys keep their defaults
	assert.Equal(t, DefaultConfig().MaxCols, cfg.MaxCols)
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := loadConfigFile(path)
	require.Error(t, err)
}

func TestHistoryFilePrefersConfigured(t *testing.T) {
	cfg := Config{HistoryFile: "/tmp/custom_history"}
	assert.Equal(t, "/tmp/custom_history", cfg.historyFile())

	cfg = Config{}
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sheet_history"), cfg.historyFile())
}
