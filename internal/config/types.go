package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Unknown lists keys found in config files that no field accepts.
	Unknown []string
}

// Default values.
const (
	DefaultUTCOffset      = 9.0
	DefaultOutputDir      = "."
	DefaultLogDir         = "~/.report2xctsk"
	DefaultListenAddr     = ":8080"
	DefaultMaxUploadBytes = 1 << 20
	DefaultValidateOutput = true
	DefaultHistory        = true
)

// Config holds the full configuration for report2xctsk.
type Config struct {
	// Conversion
	UTCOffset    float64 `toml:"utc_offset"`
	WaypointFile string  `toml:"waypoint_file"`
	OutputDir    string  `toml:"output_dir"`

	// Output validation; SchemaFile overrides the bundled schema
	SchemaFile       string `toml:"schema_file"`
	ValidateOutput   bool   `toml:"validate_output"`
	StrictValidation bool   `toml:"strict_validation"`

	// Conversion history
	LogDir  string `toml:"log_dir"`
	History bool   `toml:"history"`

	// HTTP service
	ListenAddr     string `toml:"listen_addr"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	ProjectRoot string `toml:"-"`
}
