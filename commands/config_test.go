package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfigDefaults(t *testing.T) {
	// An explicit path that exists but is empty exercises the defaults.
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	cfg, err := LoadFileConfig(path)

	require.NoError(t, err)
	assert.Equal(t, defaultLogRoot, cfg.Dir)
	assert.Equal(t, 30*time.Minute, cfg.Interval)
	assert.Equal(t, "summary", cfg.Output)
	assert.Equal(t, "line", cfg.Chart)
	assert.Equal(t, ".", cfg.SaveDir)
	assert.Equal(t, 200, cfg.DPI)
	assert.Equal(t, 2, cfg.SkipLabels)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.False(t, cfg.View)
}

func TestLoadFileConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
dir: /srv/code-server/logs
interval: 15m
output: json
chart: both
save_dir: /tmp/charts
dpi: 300
skip_labels: 4
timezone: UTC
view: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFileConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "/srv/code-server/logs", cfg.Dir)
	assert.Equal(t, 15*time.Minute, cfg.Interval)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "both", cfg.Chart)
	assert.Equal(t, "/tmp/charts", cfg.SaveDir)
	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, 4, cfg.SkipLabels)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.View)
}

func TestLoadFileConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dir: [unclosed"), 0644))

	_, err := LoadFileConfig(path)

	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), expandPath("~/x"))
	assert.Equal(t, "", expandPath(""))

	abs := expandPath("relative/path")
	assert.True(t, filepath.IsAbs(abs))
}
