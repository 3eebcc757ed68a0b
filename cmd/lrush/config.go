package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/tailscale/hujson"
)

// Config keys, as spelled in config files. They double as the names used
// to record which fields a source set.
const (
	keyCapacity   = "capacity"
	keyIndexWidth = "index_width"
	keyHistory    = "history"
)

// historyOff disables the history file.
const historyOff = "off"

// Config holds all configuration options.
type Config struct {
	// Capacity is the cache capacity. Zero is valid: every put is rejected.
	Capacity int `json:"capacity"`

	// IndexWidth is the slot index width in bits (8, 16, 32 or 64).
	// Zero picks the narrowest width that fits Capacity.
	IndexWidth int `json:"index_width,omitempty"` //nolint:tagliatelle // snake_case for config file

	// History is the line-editing history file. Empty uses the default
	// location, "off" disables history.
	History string `json:"history,omitempty"`
}

// envConfig mirrors Config for environment overrides.
type envConfig struct {
	Capacity   int    `env:"LRUSH_CAPACITY"`
	IndexWidth int    `env:"LRUSH_INDEX_WIDTH"`
	History    string `env:"LRUSH_HISTORY"`
}

// envKeys maps environment variables to the config key they override.
var envKeys = map[string]string{
	"LRUSH_CAPACITY":    keyCapacity,
	"LRUSH_INDEX_WIDTH": keyIndexWidth,
	"LRUSH_HISTORY":     keyHistory,
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to --config file if loaded, empty otherwise
	Env      bool   // Whether any LRUSH_* variable was applied
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity: 16,
	}
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/lrush/config.json if set, otherwise
// ~/.config/lrush/config.json. Returns empty string if the home directory
// cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "lrush", "config.json")
	}

	home := env["HOME"]
	if home == "" {
		var err error

		home, err = os.UserHomeDir()
		if err != nil {
			return ""
		}
	}

	return filepath.Join(home, ".config", "lrush", "config.json")
}

// defaultHistoryPath returns ~/.lrush_history, or empty string if the home
// directory cannot be determined.
func defaultHistoryPath(env map[string]string) string {
	home := env["HOME"]
	if home == "" {
		var err error

		home, err = os.UserHomeDir()
		if err != nil {
			return ""
		}
	}

	return filepath.Join(home, ".lrush_history")
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/lrush/config.json or $XDG_CONFIG_HOME/lrush/config.json)
// 3. Explicit config file via configPath (if non-empty)
// 4. LRUSH_* environment variables
// 5. CLI overrides, for the keys present in cliSet.
func LoadConfig(
	configPath string, cliOverrides Config, cliSet map[string]bool, env map[string]string,
) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	if globalPath := getGlobalConfigPath(env); globalPath != "" {
		globalCfg, set, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg, set)
		}
	}

	if configPath != "" {
		_, statErr := os.Stat(configPath)
		if statErr != nil {
			return Config{}, ConfigSources{}, fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}

		fileCfg, set, _, err := loadConfigFile(configPath, true)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		sources.Explicit = configPath
		cfg = mergeConfig(cfg, fileCfg, set)
	}

	envCfg, envSet, err := parseEnv(env)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Env = len(envSet) > 0
	cfg = mergeConfig(cfg, envCfg, envSet)

	cfg = mergeConfig(cfg, cliOverrides, cliSet)

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, ConfigSources{}, validateErr
	}

	return cfg, sources, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return zero config. Returns the config, the set of keys present in the
// file, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, set, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, parseErr)
	}

	return cfg, set, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	ast, err := hujson.Parse(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	ast.Standardize()

	var cfg Config

	unmarshalErr := json.Unmarshal(ast.Pack(), &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, fileKeys(ast), nil
}

// fileKeys returns the top-level keys present in a parsed config file, so an
// explicit 0 still overrides lower sources.
func fileKeys(ast hujson.Value) map[string]bool {
	set := make(map[string]bool)

	obj, ok := ast.Value.(*hujson.Object)
	if !ok {
		return set
	}

	for _, member := range obj.Members {
		name, ok := member.Name.Value.(hujson.Literal)
		if ok {
			set[name.String()] = true
		}
	}

	return set
}

// parseEnv reads LRUSH_* overrides from env. Only variables that are present
// count as set, so an unset variable never resets a config file value.
func parseEnv(environ map[string]string) (Config, map[string]bool, error) {
	var ec envConfig

	err := env.ParseWithOptions(&ec, env.Options{Environment: environ})
	if err != nil {
		return Config{}, nil, fmt.Errorf("%w: %w", errEnvInvalid, err)
	}

	set := make(map[string]bool)

	for name, key := range envKeys {
		if _, ok := environ[name]; ok {
			set[key] = true
		}
	}

	return Config{
		Capacity:   ec.Capacity,
		IndexWidth: ec.IndexWidth,
		History:    ec.History,
	}, set, nil
}

// mergeConfig copies the fields named in set from overlay onto base.
func mergeConfig(base, overlay Config, set map[string]bool) Config {
	if set[keyCapacity] {
		base.Capacity = overlay.Capacity
	}

	if set[keyIndexWidth] {
		base.IndexWidth = overlay.IndexWidth
	}

	if set[keyHistory] {
		base.History = overlay.History
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.Capacity < 0 {
		return fmt.Errorf("%w: %d", errCapacityInvalid, cfg.Capacity)
	}

	switch cfg.IndexWidth {
	case 0, 8, 16, 32, 64:
	default:
		return fmt.Errorf("%w: %d (want 8, 16, 32 or 64)", errIndexWidthInvalid, cfg.IndexWidth)
	}

	return nil
}

// FormatConfig returns the config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
