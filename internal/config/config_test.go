package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// These tests mutate the environment, so they do not run in parallel.

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("TAXSHEET_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, "en-AU", cfg.UI.Locale)
	require.True(t, cfg.Archive.Enabled)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("TAXSHEET_CONFIG", path)

	want := Default()
	want.Practice.Name = "FMW Accountants"
	want.Practice.TaxYearEnd = "30 June 2023"
	want.Archive.Enabled = false
	want.UI.CurrencySymbol = "A$"

	written, err := Save(want)
	require.NoError(t, err)
	require.Equal(t, path, written)
	_, err = os.Stat(path)
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\nname = \"From File\"\n\n[log]\nlevel = \"warn\"\n"), 0o644))
	t.Setenv("TAXSHEET_CONFIG", path)
	t.Setenv("TAXSHEET_PRACTICE_NAME", "From Env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.Practice.Name)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice\nname = "), 0o644))
	t.Setenv("TAXSHEET_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
