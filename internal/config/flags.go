package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPolicy     = flag.String("policy", "", "Lightmap policy (bucket, round)")
	flagPrecedence = flag.String("precedence", "", "Name symbol precedence (prefix, suffix)")
	flagTables     = flag.String("tables", "", "Path to a YAML flag table")
	flagLog        = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPolicy != "" {
		cfg.Rules.LightmapPolicy = *flagPolicy
	}
	if *flagPrecedence != "" {
		cfg.Rules.NamePrecedence = *flagPrecedence
	}
	if *flagTables != "" {
		cfg.Rules.TablesFile = *flagTables
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
