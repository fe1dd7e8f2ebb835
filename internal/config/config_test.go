package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/termfolio/internal/glyphgrid"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint, got %s", cfg.Endpoint)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Timeout <= 0 {
		t.Error("timeout should be positive")
	}
	if err := cfg.Grid.Params(glyphgrid.DefaultParams()).Validate(); err != nil {
		t.Errorf("default grid invalid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Theme = "ocean"
	cfg.Timeout = 5 * time.Second
	cfg.Grid.Radius = 80
	cfg.Backend.APIKey = "secret"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "ocean", loaded.Theme)
	require.Equal(t, 5*time.Second, loaded.Timeout)
	require.Equal(t, 80.0, loaded.Grid.Radius)
	require.Empty(t, loaded.Backend.APIKey, "api key must not be persisted")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvEndpoint: "http://localhost:8000/chat",
		EnvAPIKey:   "k",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	require.Equal(t, "http://localhost:8000/chat", cfg.Endpoint)
	require.Equal(t, DefaultTheme, cfg.Theme)
	require.Equal(t, "k", cfg.Backend.APIKey)
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if p == nil {
			t.Fatalf("preset %s listed but not found", name)
		}
		if err := p.Params(glyphgrid.DefaultParams()).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestUsePreset(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.UsePreset("storm"))
	require.Equal(t, "storm", cfg.Preset)
	require.Equal(t, Presets["storm"].Radius, cfg.Grid.Radius)

	err := cfg.UsePreset("hurricane")
	require.ErrorIs(t, err, ErrUnknownPreset)
	require.Equal(t, "storm", cfg.Preset)
}

func TestLogPath(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, filepath.Join(DefaultDataDir, DefaultLogFile), cfg.LogPath())

	cfg.Log.File = "/var/log/termfolio.log"
	require.Equal(t, "/var/log/termfolio.log", cfg.LogPath())
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "data"
	require.Equal(t, filepath.Join("data", DefaultDatabase), cfg.DatabasePath())
}
