package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENWEATHER_API_KEY", "")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 10, cfg.Loop.MaxIterations)
	assert.Equal(t, 10*time.Second, cfg.ToolTimeout())
	assert.Empty(t, cfg.Model.APIKey)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENWEATHER_API_KEY", "owm-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model:
  name: gpt-4.1
loop:
  max_iterations: 5
tools:
  timeout_seconds: 3
  weather:
    base_url: http://localhost:9999
memory:
  user_id: alice
`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", cfg.Model.Name)
	assert.Equal(t, 5, cfg.Loop.MaxIterations)
	assert.Equal(t, 3*time.Second, cfg.ToolTimeout())
	assert.Equal(t, "http://localhost:9999", cfg.Tools.Weather.BaseURL)
	assert.Equal(t, "alice", cfg.Memory.UserID)

	assert.Equal(t, "sk-test", cfg.Model.APIKey, "credentials come from the environment")
	assert.Equal(t, "owm-test", cfg.Tools.Weather.APIKey)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  name: gpt-4.1\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", cfg.Model.Name)
	assert.Equal(t, 10, cfg.Loop.MaxIterations, "unset fields fall back to defaults")
	assert.Equal(t, 10, cfg.Tools.TimeoutSeconds)
}

func TestLoad_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config file")
	})

	t.Run("api keys never read from file", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path,
			[]byte("model:\n  name: gpt-4.1\n  apikey: leaked\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.Model.APIKey)
	})
}
