// Package config loads service configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the garmentd runtime settings.
type Config struct {
	Addr          string `yaml:"addr"`
	OutputRoot    string `yaml:"output_root"`
	MaxConcurrent int64  `yaml:"max_concurrent"`
	CleanupPolicy string `yaml:"cleanup_policy"` // strict or idempotent
	LogLevel      string `yaml:"log_level"`
	MeshCells     int    `yaml:"mesh_cells"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		OutputRoot:    "output",
		MaxConcurrent: 4,
		CleanupPolicy: "strict",
		LogLevel:      "info",
		MeshCells:     100,
	}
}

// Load reads the YAML file at path (skipped when path is empty) and applies
// environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CleanupPolicy {
	case "strict", "idempotent":
	default:
		return fmt.Errorf("config: cleanup_policy must be strict or idempotent, got %q", c.CleanupPolicy)
	}
	if c.MeshCells <= 0 {
		return fmt.Errorf("config: mesh_cells must be positive, got %d", c.MeshCells)
	}
	return nil
}

// applyEnv overrides fields from GARMENTD_* variables.
func applyEnv(c *Config) {
	if v := os.Getenv("GARMENTD_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("GARMENTD_OUTPUT_ROOT"); v != "" {
		c.OutputRoot = v
	}
	if v := os.Getenv("GARMENTD_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("GARMENTD_CLEANUP_POLICY"); v != "" {
		c.CleanupPolicy = v
	}
	if v := os.Getenv("GARMENTD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GARMENTD_MESH_CELLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MeshCells = n
		}
	}
}
