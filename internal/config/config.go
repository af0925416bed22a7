// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads optional YAML configuration overrides for ctxcache
// build and select operations.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuildConfig is the YAML-facing shape of cache build configuration. It
// mirrors contextcore.CacheBuildConfig field for field.
type BuildConfig struct {
	Version       string `yaml:"version"`
	HashAlgorithm string `yaml:"hash_algorithm"`
}

// SelectConfig is the YAML-facing shape of selection defaults.
type SelectConfig struct {
	Budget int `yaml:"budget"`
}

// Config is the top-level ctxcache.yaml shape. Either section may be
// omitted; Defaults fills in what's missing.
type Config struct {
	Build  BuildConfig  `yaml:"build"`
	Select SelectConfig `yaml:"select"`
}

// Defaults returns the configuration used when no file is present or a
// section is omitted.
func Defaults() Config {
	return Config{
		Build:  BuildConfig{Version: "1", HashAlgorithm: "sha256"},
		Select: SelectConfig{Budget: 4000},
	}
}

// Load reads and parses a YAML configuration file at path, filling any
// zero-valued fields from Defaults. A missing file is not an error: Load
// returns Defaults() unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if parsed.Build.Version != "" {
		cfg.Build.Version = parsed.Build.Version
	}
	if parsed.Build.HashAlgorithm != "" {
		cfg.Build.HashAlgorithm = parsed.Build.HashAlgorithm
	}
	if parsed.Select.Budget != 0 {
		cfg.Select.Budget = parsed.Select.Budget
	}

	return cfg, nil
}
