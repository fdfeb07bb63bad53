// Package config loads and saves user preferences for QS Desk.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config holds user preferences. The API key may also arrive via environment;
// its absence is tolerated at startup and surfaces later as gateway fallbacks.
type Config struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"` // text-generation model identifier
	Theme  string `json:"theme"` // "light" or "dark"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Model: "gemini-3-flash-preview",
		Theme: "dark",
	}
}

// Dir returns the directory where config and logs are stored. The
// QSDESK_CONFIG_DIR environment variable overrides the default of ~/.qsdesk.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("QSDESK_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".qsdesk"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk and applies environment overrides.
// A missing file yields the defaults, not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := File()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return applyEnv(cfg), nil
	}
	if err != nil {
		return applyEnv(cfg), err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	return applyEnv(cfg), nil
}

// applyEnv lets the environment override stored values. GEMINI_API_KEY wins
// over the file so a key never has to be written to disk.
func applyEnv(cfg Config) Config {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		cfg.APIKey = key
	}
	if model := strings.TrimSpace(os.Getenv("QSDESK_MODEL")); model != "" {
		cfg.Model = model
	}
	return cfg
}

// Save writes the configuration to disk, creating the directory if needed.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
