package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagGRF        = flag.String("grf", "", "Path to a GRF archive (prepended to data.grf_paths)")
	flagExtractDir = flag.String("out", "", "Destination directory for extracted files")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagGRF != "" {
		cfg.Data.GRFPaths = append([]string{*flagGRF}, cfg.Data.GRFPaths...)
	}
	if *flagExtractDir != "" {
		cfg.Data.ExtractDir = *flagExtractDir
	}
}
