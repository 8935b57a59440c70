package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Simouie/Project-Furnace/internal/rules"
	"github.com/Simouie/Project-Furnace/pkg/schema"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Rules.LightmapPolicy != "bucket" {
		t.Errorf("expected lightmap policy 'bucket', got %s", cfg.Rules.LightmapPolicy)
	}
	if cfg.Rules.NamePrecedence != "prefix" {
		t.Errorf("expected name precedence 'prefix', got %s", cfg.Rules.NamePrecedence)
	}
	if cfg.Rules.InstancePrefix != "%" {
		t.Errorf("expected instance prefix '%%', got %s", cfg.Rules.InstancePrefix)
	}
	if cfg.Rules.ClassifyCacheSize <= 0 {
		t.Errorf("expected a positive cache size, got %d", cfg.Rules.ClassifyCacheSize)
	}

	if cfg.Scene.AssetType != schema.AssetTypeScenario {
		t.Errorf("expected asset type %s, got %s", schema.AssetTypeScenario, cfg.Scene.AssetType)
	}
	if cfg.Scene.SkipHidden {
		t.Error("expected skip_hidden to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
rules:
  lightmap_policy: round
  name_precedence: suffix
  instance_prefix: "~"
  classify_cache_size: 16

scene:
  asset_type: MODEL
  skip_hidden: true

logging:
  level: "debug"
  log_file: "furnace.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Rules.LightmapPolicy != "round" {
		t.Errorf("expected lightmap policy 'round', got %s", cfg.Rules.LightmapPolicy)
	}
	if cfg.Rules.NamePrecedence != "suffix" {
		t.Errorf("expected name precedence 'suffix', got %s", cfg.Rules.NamePrecedence)
	}
	if cfg.Rules.InstancePrefix != "~" {
		t.Errorf("expected instance prefix '~', got %s", cfg.Rules.InstancePrefix)
	}
	if cfg.Rules.ClassifyCacheSize != 16 {
		t.Errorf("expected cache size 16, got %d", cfg.Rules.ClassifyCacheSize)
	}
	if cfg.Scene.AssetType != "MODEL" {
		t.Errorf("expected asset type MODEL, got %s", cfg.Scene.AssetType)
	}
	if !cfg.Scene.SkipHidden {
		t.Error("expected skip_hidden to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "furnace.log" {
		t.Errorf("expected log file 'furnace.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "rules:\n  lightmap_policy: [\n  invalid syntax here\n"},
		{"policy", "rules:\n  lightmap_policy: nearest\n"},
		{"precedence", "rules:\n  name_precedence: middle\n"},
		{"cache size", "rules:\n  classify_cache_size: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("rules:\n  lightmap_policy: round\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "policy flag",
			setup: func() { *flagPolicy = "round" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Rules.LightmapPolicy != "round" {
					t.Errorf("expected lightmap policy 'round', got %s", cfg.Rules.LightmapPolicy)
				}
			},
			teardown: func() { *flagPolicy = "" },
		},
		{
			name:  "precedence flag",
			setup: func() { *flagPrecedence = "suffix" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Rules.NamePrecedence != "suffix" {
					t.Errorf("expected name precedence 'suffix', got %s", cfg.Rules.NamePrecedence)
				}
			},
			teardown: func() { *flagPrecedence = "" },
		},
		{
			name: "tables and log flags",
			setup: func() {
				*flagTables = "tables.yaml"
				*flagLog = "run.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Rules.TablesFile != "tables.yaml" {
					t.Errorf("expected tables file tables.yaml, got %s", cfg.Rules.TablesFile)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagTables = ""
				*flagLog = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
rules:
  lightmap_policy: round
  name_precedence: suffix
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagPolicy = "bucket"
	defer func() {
		*flagConfig = ""
		*flagPolicy = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// flag beats file
	if cfg.Rules.LightmapPolicy != "bucket" {
		t.Errorf("expected lightmap policy 'bucket' from flag, got %s", cfg.Rules.LightmapPolicy)
	}
	// file beats default
	if cfg.Rules.NamePrecedence != "suffix" {
		t.Errorf("expected name precedence 'suffix' from file, got %s", cfg.Rules.NamePrecedence)
	}
}

func TestLoadInvalidFlag(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagPrecedence = "sideways"
	defer func() {
		*flagConfig = ""
		*flagPrecedence = ""
	}()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown precedence flag")
	}
}

func TestRuleset(t *testing.T) {
	cfg := Default()
	cfg.Rules.LightmapPolicy = "round"
	cfg.Rules.NamePrecedence = "suffix"
	cfg.Rules.InstancePrefix = "~"

	rs, err := cfg.Ruleset()
	if err != nil {
		t.Fatalf("failed to build ruleset: %v", err)
	}
	if rs.Lightmap != rules.LightmapRound {
		t.Errorf("expected round policy, got %s", rs.Lightmap)
	}
	if rs.Precedence != rules.SuffixWins {
		t.Errorf("expected suffix precedence, got %s", rs.Precedence)
	}
	if rs.InstancePrefix != "~" {
		t.Errorf("expected instance prefix '~', got %s", rs.InstancePrefix)
	}
	if len(rs.Tables.Surface) != len(rules.DefaultTables().Surface) {
		t.Error("expected the built-in surface table")
	}
}

func TestRulesetTablesFile(t *testing.T) {
	tablesPath := filepath.Join(t.TempDir(), "tables.yaml")
	content := `
surface:
  - flag: ladder
    scope: face
    key: ladder
    value: true
portal: []
`
	if err := os.WriteFile(tablesPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tables: %v", err)
	}

	cfg := Default()
	cfg.Rules.TablesFile = tablesPath
	rs, err := cfg.Ruleset()
	if err != nil {
		t.Fatalf("failed to build ruleset: %v", err)
	}
	if len(rs.Tables.Surface) != 1 || len(rs.Tables.Portal) != 0 {
		t.Errorf("expected tables from file, got %d surface and %d portal rules",
			len(rs.Tables.Surface), len(rs.Tables.Portal))
	}

	cfg.Rules.TablesFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.Ruleset(); err == nil {
		t.Error("expected error for missing tables file")
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Scene.SkipHidden = true
	cfg.Rules.ClassifyCacheSize = 8

	opts, err := cfg.Options(nil)
	if err != nil {
		t.Fatalf("failed to build options: %v", err)
	}
	if opts.Rules == nil {
		t.Fatal("expected a ruleset")
	}
	if !opts.SkipHidden || opts.CacheSize != 8 || opts.AssetType != schema.AssetTypeScenario {
		t.Errorf("unexpected options: %+v", opts)
	}

	cfg.Rules.LightmapPolicy = "nearest"
	if _, err := cfg.Options(nil); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Rules.LightmapPolicy = "round"
	cfg.Scene.SkipHidden = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Rules.LightmapPolicy != "round" {
		t.Errorf("expected lightmap policy 'round', got %s", loaded.Rules.LightmapPolicy)
	}
	if !loaded.Scene.SkipHidden {
		t.Error("expected skip_hidden to survive a save")
	}
}
