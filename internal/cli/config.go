package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileName is the default config file looked up in the working
// directory and the XDG config directory.
const configFileName = "loadicator.toml"

// Config is the TOML configuration shared by all commands. Flags override
// config values; config values override defaults.
//
// Example loadicator.toml:
//
//	data = "ship_data.xlsx"
//
//	[server]
//	addr = ":8080"
//
//	[kg]
//	base_factor = 0.45
//	load_adjustment = 0.05
//
//	[cache]
//	dir = "/var/cache/loadicator"
//	redis = "localhost:6379"
type Config struct {
	// Data is the default ship data workbook path.
	Data string `toml:"data"`

	Server ServerConfig `toml:"server"`
	KG     KGConfig     `toml:"kg"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// KGConfig overrides the vertical center of gravity estimation constants.
// Zero values keep the engine defaults.
type KGConfig struct {
	BaseFactor     float64 `toml:"base_factor"`
	LoadAdjustment float64 `toml:"load_adjustment"`
}

// CacheConfig configures the artifact cache backend.
type CacheConfig struct {
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// Redis is a redis address (host:port). When set, the serve command
	// uses redis instead of the file cache.
	Redis string `toml:"redis"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the config file at path. An empty path searches the
// working directory and then the XDG config directory; a missing file in
// that case is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// findConfig returns the first existing default config path, or "".
func findConfig() string {
	candidates := []string{configFileName}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, appName, configFileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", appName, configFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
