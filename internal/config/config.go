package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	BaseDir         string   `toml:"base_dir"`
	CacheDir        string   `toml:"cache_dir"`
	HistoryFile     string   `toml:"history_file"`
	ADBPath         string   `toml:"adb_path"`
	DefaultVersion  string   `toml:"default_version"`
	ReleaseHost     string   `toml:"release_host"`
	ReleaseAPI      string   `toml:"release_api"`
	ReleaseRepo     string   `toml:"release_repo"`
	ServerName      string   `toml:"server_name"`
	RemotePath      string   `toml:"remote_path"`
	DownloadTimeout duration `toml:"download_timeout"`
}

// duration lets TOML carry values like "15m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig(base string) *Config {
	return &Config{
		BaseDir:         base,
		CacheDir:        filepath.Join(base, "cache"),
		HistoryFile:     filepath.Join(base, "history.db"),
		ADBPath:         "adb",
		DefaultVersion:  "",
		ReleaseHost:     "https://github.com/frida/frida/releases/download",
		ReleaseAPI:      "https://api.github.com",
		ReleaseRepo:     "frida/frida",
		ServerName:      "frida-server",
		RemotePath:      "/data/local/tmp/frida-server",
		DownloadTimeout: duration{15 * time.Minute},
	}
}

// Timeout returns the configured download timeout, guarding against a
// zero value from a hand-edited config file.
func (c *Config) Timeout() time.Duration {
	if c.DownloadTimeout.Duration <= 0 {
		return 15 * time.Minute
	}
	return c.DownloadTimeout.Duration
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return LoadFrom(filepath.Join(home, ".frida-push"))
}

// LoadFrom reads config.toml under base, writing the defaults there on
// first run.
func LoadFrom(base string) (*Config, error) {
	cfg := DefaultConfig(base)
	configPath := filepath.Join(base, "config.toml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath := filepath.Join(cfg.BaseDir, "config.toml")

	if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
