package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromWritesDefaults(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".frida-push")

	cfg, err := LoadFrom(base)
	require.NoError(t, err)

	require.Equal(t, base, cfg.BaseDir)
	require.Equal(t, filepath.Join(base, "cache"), cfg.CacheDir)
	require.Equal(t, "adb", cfg.ADBPath)
	require.Equal(t, "frida-server", cfg.ServerName)
	require.Equal(t, "/data/local/tmp/frida-server", cfg.RemotePath)
	require.Empty(t, cfg.DefaultVersion)

	// First run persists the defaults.
	require.FileExists(t, filepath.Join(base, "config.toml"))
}

func TestLoadFromReadsExisting(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".frida-push")
	require.NoError(t, os.MkdirAll(base, 0755))

	content := `
adb_path = "/opt/platform-tools/adb"
default_version = "10.6.32"
download_timeout = "5m"
`
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.toml"), []byte(content), 0644))

	cfg, err := LoadFrom(base)
	require.NoError(t, err)

	require.Equal(t, "/opt/platform-tools/adb", cfg.ADBPath)
	require.Equal(t, "10.6.32", cfg.DefaultVersion)
	require.Equal(t, 5*time.Minute, cfg.Timeout())

	// Unset keys keep their defaults.
	require.Equal(t, "frida-server", cfg.ServerName)
}

func TestTimeoutGuardsZero(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.Equal(t, 15*time.Minute, cfg.Timeout())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".frida-push")

	cfg := DefaultConfig(base)
	cfg.DefaultVersion = "16.1.4"
	require.NoError(t, Save(cfg))

	loaded, err := LoadFrom(base)
	require.NoError(t, err)
	require.Equal(t, "16.1.4", loaded.DefaultVersion)
	require.Equal(t, cfg.Timeout(), loaded.Timeout())
}
