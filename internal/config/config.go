// Package config handles migration settings loading and management.
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Simouie/Project-Furnace/internal/rules"
	"github.com/Simouie/Project-Furnace/internal/transfer"
	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// Config holds all migration settings.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// RulesConfig selects the rule tables and policies.
type RulesConfig struct {
	LightmapPolicy    string `yaml:"lightmap_policy"` // "bucket" or "round"
	NamePrecedence    string `yaml:"name_precedence"` // "prefix" or "suffix"
	InstancePrefix    string `yaml:"instance_prefix"`
	TablesFile        string `yaml:"tables_file"` // replaces the built-in flag tables
	ClassifyCacheSize int    `yaml:"classify_cache_size"`
}

// SceneConfig holds scene-wide settings.
type SceneConfig struct {
	AssetType  string `yaml:"asset_type"`
	SkipHidden bool   `yaml:"skip_hidden"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the built-in migration rules.
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			LightmapPolicy:    rules.LightmapBuckets.String(),
			NamePrecedence:    rules.PrefixWins.String(),
			InstancePrefix:    rules.DefaultInstancePrefix,
			ClassifyCacheSize: transfer.DefaultCacheSize,
		},
		Scene: SceneConfig{
			AssetType: schema.AssetTypeScenario,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Ruleset builds the rule set described by the rules section.
func (c *Config) Ruleset() (*rules.Ruleset, error) {
	rs := rules.DefaultRuleset()

	var err error
	if rs.Lightmap, err = rules.ParseLightmapPolicy(c.Rules.LightmapPolicy); err != nil {
		return nil, err
	}
	if rs.Precedence, err = rules.ParsePrecedence(c.Rules.NamePrecedence); err != nil {
		return nil, err
	}
	rs.InstancePrefix = c.Rules.InstancePrefix

	if c.Rules.TablesFile != "" {
		t, err := rules.LoadTables(c.Rules.TablesFile)
		if err != nil {
			return nil, fmt.Errorf("loading rule tables: %w", err)
		}
		rs.Tables = t
	}
	return rs, nil
}

// Options returns the driver options for this config.
func (c *Config) Options(log *zap.Logger) (transfer.Options, error) {
	rs, err := c.Ruleset()
	if err != nil {
		return transfer.Options{}, err
	}
	return transfer.Options{
		Rules:      rs,
		Logger:     log,
		CacheSize:  c.Rules.ClassifyCacheSize,
		AssetType:  c.Scene.AssetType,
		SkipHidden: c.Scene.SkipHidden,
	}, nil
}
