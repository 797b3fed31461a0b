package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterwatch/internal/eventbus"
	"disasterwatch/internal/predicthq"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PREDICTHQ_TOKEN", "PREDICTHQ_BASE_URL", "DISASTERWATCH_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cs := NewConfigServiceWithBus(nil, path)
	cfg, err := cs.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, predicthq.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout.Duration, "no timeout by default")
	assert.True(t, cfg.UISettings.ShowLabels)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "base_url = ")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestTokenNeverWrittenToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cs := NewConfigServiceWithBus(nil, path)

	cfg := DefaultConfig()
	cfg.Token = "super-secret"
	require.NoError(t, cs.SaveToPath(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret")
}

func TestLoadFromPathReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `version = 1
base_url = "https://proxy.example.com/v1"
timeout = "20s"

[ui]
show_labels = false
show_location = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewConfigServiceWithBus(nil, path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.example.com/v1", cfg.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Timeout.Duration)
	assert.False(t, cfg.UISettings.ShowLabels)
	assert.True(t, cfg.UISettings.ShowLocation)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()
	cs := NewConfigServiceWithBus(nil, filepath.Join(dir, FileName))

	_, err := cs.LoadFromPath(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("version = = 1"), 0600))
	_, err = cs.LoadFromPath(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	badDuration := filepath.Join(dir, "dur.toml")
	require.NoError(t, os.WriteFile(badDuration, []byte(`timeout = "soon"`), 0600))
	_, err = cs.LoadFromPath(badDuration)
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`base_url = "https://file.example.com/v1"`), 0600))

	t.Setenv("PREDICTHQ_TOKEN", "from-env")
	t.Setenv("PREDICTHQ_BASE_URL", "https://env.example.com/v1")
	t.Setenv("DISASTERWATCH_TIMEOUT", "5s")

	cfg, err := NewConfigServiceWithBus(nil, path).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, "https://env.example.com/v1", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")), "missing .env is fine")

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PREDICTHQ_TOKEN=dotenv-token\n"), 0600))
	require.NoError(t, LoadDotEnv(envFile))
	t.Cleanup(func() { _ = os.Unsetenv("PREDICTHQ_TOKEN") })

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "dotenv-token", cfg.Token)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREDICTHQ_TOKEN")

	cfg.Token = "tok"
	cfg.BaseURL = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")

	cfg.BaseURL = predicthq.DefaultBaseURL
	assert.NoError(t, cfg.Validate())
}

func TestLoadPublishesEvents(t *testing.T) {
	clearEnv(t)
	bus := eventbus.New()
	defer bus.Close()

	loaded := make(chan eventbus.ConfigLoadedEvent, 1)
	saved := make(chan eventbus.ConfigSavedEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { loaded <- e.(eventbus.ConfigLoadedEvent) })
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { saved <- e.(eventbus.ConfigSavedEvent) })

	path := filepath.Join(t.TempDir(), FileName)
	_, err := NewConfigServiceWithBus(bus, path).Load()
	require.NoError(t, err)

	select {
	case e := <-saved:
		assert.Equal(t, path, e.Path)
	case <-time.After(time.Second):
		t.Fatal("no ConfigSaved event for first run")
	}
	select {
	case e := <-loaded:
		assert.Equal(t, path, e.Path)
	case <-time.After(time.Second):
		t.Fatal("no ConfigLoaded event")
	}
}
