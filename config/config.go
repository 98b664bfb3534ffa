// Package config loads runtime settings for the plug framework from
// TOML files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when a file or key is absent.
const (
	DefaultLuaTimeoutMS     = 5000
	DefaultHistoryDepth     = 2
	DefaultHistoryVariables = 2
)

// Config holds runtime settings.
type Config struct {
	Lua     LuaConfig     `toml:"lua"`
	History HistoryConfig `toml:"history"`
}

// LuaConfig configures scripted plug execution.
type LuaConfig struct {
	// PlugDir is the root directory scanned for scripted plugs.
	PlugDir string `toml:"plug_dir"`

	// TimeoutMS bounds a single hook execution in milliseconds.
	// Zero disables the timeout.
	TimeoutMS int `toml:"timeout_ms"`
}

// HistoryConfig configures mixing history construction.
type HistoryConfig struct {
	Depth     int `toml:"depth"`
	Variables int `toml:"variables"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lua: LuaConfig{
			TimeoutMS: DefaultLuaTimeoutMS,
		},
		History: HistoryConfig{
			Depth:     DefaultHistoryDepth,
			Variables: DefaultHistoryVariables,
		},
	}
}

// Load reads configuration from a TOML file, layered over Default. A
// missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the Lua execution timeout as a duration.
func (c LuaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
