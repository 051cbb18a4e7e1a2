// Package config loads reasoner tuning knobs from a TOML or YAML file
// (auto-detected by extension, per spec.md §6's `--config FILE` CLI flag),
// falling back to conservative defaults when no file is given.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/anusornc/owl2-reasoner-sub000/internal/tableau"
)

// fileConfig is the on-disk shape: durations are strings so both TOML and
// YAML decoders can populate them without a custom unmarshaler, and Load
// parses them into ReasoningConfig's typed fields afterward.
type fileConfig struct {
	TableauMaxNodes int    `toml:"tableau_max_nodes" yaml:"tableau_max_nodes"`
	Timeout         string `toml:"timeout" yaml:"timeout"`
	CacheSize       int    `toml:"cache_size" yaml:"cache_size"`
	CacheTTL        string `toml:"cache_ttl" yaml:"cache_ttl"`
	LogLevel        string `toml:"log_level" yaml:"log_level"`
	// ProfileFastPath is a pointer so Load can tell "absent from the file"
	// (keep Default()'s true) apart from an explicit `false`.
	ProfileFastPath *bool `toml:"profile_fast_path" yaml:"profile_fast_path"`
}

// ReasoningConfig holds every tunable knob the reasoner's public API
// accepts via `reasoner.WithConfig` (spec.md §6).
type ReasoningConfig struct {
	TableauMaxNodes int
	Timeout         time.Duration
	CacheSize       int
	CacheTTL        time.Duration
	LogLevel        string
	// ProfileFastPath, when true, lets Classify/IsSubClassOf/IsSatisfiable
	// dispatch into internal/profile/{el,ql,rl} for an ontology that
	// validates against that profile, instead of always running the full
	// tableau (spec.md §6).
	ProfileFastPath bool
}

// Default returns the conservative settings used when no config file is
// supplied: tableau.DefaultConfig()'s node cap, a generous per-operation
// timeout, and the cache package's own defaults.
func Default() ReasoningConfig {
	return ReasoningConfig{
		TableauMaxNodes: tableau.DefaultConfig().MaxNodes,
		Timeout:         30 * time.Second,
		CacheSize:       4096,
		CacheTTL:        10 * time.Minute,
		LogLevel:        "info",
		ProfileFastPath: true,
	}
}

// Load reads path, auto-detecting TOML or YAML by extension, and overlays
// it onto Default(). An empty path returns Default() unchanged.
func Load(path string) (ReasoningConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config: unrecognized extension %q (want .toml, .yaml, or .yml)", ext)
	}

	if raw.TableauMaxNodes != 0 {
		cfg.TableauMaxNodes = raw.TableauMaxNodes
	}
	if raw.CacheSize != 0 {
		cfg.CacheSize = raw.CacheSize
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid timeout %q: %w", raw.Timeout, err)
		}
		cfg.Timeout = d
	}
	if raw.CacheTTL != "" {
		d, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid cache_ttl %q: %w", raw.CacheTTL, err)
		}
		cfg.CacheTTL = d
	}
	if raw.ProfileFastPath != nil {
		cfg.ProfileFastPath = *raw.ProfileFastPath
	}

	return cfg, nil
}

// Tableau converts the reasoning config into the tableau engine's own
// Config shape.
func (c ReasoningConfig) Tableau() tableau.Config {
	return tableau.Config{MaxNodes: c.TableauMaxNodes}
}
