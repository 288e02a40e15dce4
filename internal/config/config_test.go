package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "household_expenses.xlsx", cfg.Paths.InputFile)
	assert.Equal(t, "charts", cfg.Paths.ChartsDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EXPENSE_LOGGING_LEVEL", "debug")
	t.Setenv("EXPENSE_PATHS_CHARTS_DIR", "/tmp/charts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/charts", cfg.Paths.ChartsDir)
}

func TestLoad_RejectsInvalidLevel(t *testing.T) {
	t.Setenv("EXPENSE_LOGGING_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestMergeConfigs_FileFillsDefaults(t *testing.T) {
	file := *Default()
	file.Logging.Level = "warn"
	file.Paths.InputFile = "from_file.xlsx"

	merged := mergeConfigs(file, *Default())

	assert.Equal(t, "warn", merged.Logging.Level)
	assert.Equal(t, "from_file.xlsx", merged.Paths.InputFile)
}

func TestMergeConfigs_EnvWins(t *testing.T) {
	file := *Default()
	file.Logging.Level = "warn"

	env := *Default()
	env.Logging.Level = "error"

	merged := mergeConfigs(file, env)
	assert.Equal(t, "error", merged.Logging.Level)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(PathsConfig{
		InputFile:  filepath.Join(base, "in.xlsx"),
		ReportFile: filepath.Join(base, "reports", "out.xlsx"),
		ChartsDir:  filepath.Join(base, "charts"),
		ReportsDir: filepath.Join(base, "reports"),
	})

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.ChartsDir, paths.ReportsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
