// Package config handles grfkit's CLI configuration loading and management.
package config

// Config holds grfkit's settings: where to find archives and how to log.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds archive search and extraction paths.
type DataConfig struct {
	GRFPaths   []string `yaml:"grf_paths"`   // archives to search, in priority order
	ExtractDir string   `yaml:"extract_dir"` // default destination for `grfkit extract`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			GRFPaths:   []string{"data.grf"},
			ExtractDir: "./extracted",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
