package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/require"
)

func testEnsureConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	cfg, err := ensureConfig()
	require.NoError(t, err)
	return cfg
}

func TestEnsureConfigCreatesSettings(t *testing.T) {
	cfg := testEnsureConfig(t)

	require.FileExists(t, cfg.SettingsPath)
	require.Equal(t, "gemini-2.0-flash-exp", cfg.Model)
	require.Equal(t, "Generating", cfg.StatusText)
	require.Equal(t, uint(10), cfg.Fanciness)
	require.InDelta(t, 1.0, cfg.Temperature, 0.0001)
	require.InDelta(t, 1.0, cfg.TopP, 0.0001)
	require.False(t, cfg.Quiet)
	require.Zero(t, cfg.MaxTokens)
}

func TestEnsureConfigModelAliases(t *testing.T) {
	cfg := testEnsureConfig(t)

	mod, ok := cfg.Models["flash"]
	require.True(t, ok)
	require.Equal(t, "gemini-2.0-flash-exp", mod.Name)
	require.Equal(t, "google", mod.API)

	mod, ok = cfg.Models["sonnet"]
	require.True(t, ok)
	require.Equal(t, "claude-3-5-sonnet-latest", mod.Name)
	require.Equal(t, "anthropic", mod.API)

	mod, ok = cfg.Models["llama"]
	require.True(t, ok)
	require.Equal(t, "llama3.2", mod.Name)
	require.Equal(t, "ollama", mod.API)
}

func TestEnsureConfigEnvOverrides(t *testing.T) {
	t.Setenv("DUET_MODEL", "gpt-4o")
	t.Setenv("DUET_QUIET", "true")
	t.Setenv("DUET_MAX_TOKENS", "42")
	t.Setenv("DUET_TIMEOUT", "30s")

	cfg := testEnsureConfig(t)

	require.Equal(t, "gpt-4o", cfg.Model)
	require.True(t, cfg.Quiet)
	require.Equal(t, int64(42), cfg.MaxTokens)
	require.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestEnsureConfigKeepsExistingSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	dir := filepath.Join(home, "duet")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "duet.yml"),
		[]byte("default-model: my-model\napis:\n  openai:\n    models:\n      my-model:\n        aliases: [\"mine\"]\n"),
		0o600,
	))

	cfg, err := ensureConfig()
	require.NoError(t, err)
	require.Equal(t, "my-model", cfg.Model)
	require.Equal(t, "openai", cfg.Models["mine"].API)
}

func TestEnsureConfigAliasFirstWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	dir := filepath.Join(home, "duet")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "duet.yml"),
		[]byte(`default-model: model-a
apis:
  first:
    models:
      model-a:
        aliases: ["shared"]
  second:
    models:
      model-b:
        aliases: ["shared"]
`),
		0o600,
	))

	cfg, err := ensureConfig()
	require.NoError(t, err)
	require.Equal(t, "model-a", cfg.Models["shared"].Name)
	require.Equal(t, "first", cfg.Models["shared"].API)
}

func TestConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duet.yml")
	require.NoError(t, createConfigFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	golden.RequireEqual(t, content)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte("DUET_DOTENV_TEST=from-dotenv\n"),
		0o600,
	))
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("DUET_DOTENV_TEST") })

	require.NoError(t, loadDotEnv())
	require.Equal(t, "from-dotenv", os.Getenv("DUET_DOTENV_TEST"))
}

func TestLoadDotEnvMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, loadDotEnv())
}
