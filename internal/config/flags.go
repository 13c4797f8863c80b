package config

import (
	"flag"
)

// flagFields maps global flag names to config field names.
var flagFields = map[string]string{
	"offset":           "utc_offset",
	"wpt":              "waypoint_file",
	"output-dir":       "output_dir",
	"schema":           "schema_file",
	"validate":         "validate_output",
	"strict":           "strict_validation",
	"log-dir":          "log_dir",
	"history":          "history",
	"addr":             "listen_addr",
	"max-upload-bytes": "max_upload_bytes",
	"log-level":        "log_level",
	"log-format":       "log_format",
	"log-timestamps":   "log_timestamps",
	"log-caller":       "log_caller",
}

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil, "")
}

// parseFlagsHelper is the shared implementation for flag parsing.
// Flags are bound directly to cfg, so only explicitly set flags change a
// value. If sources is non-nil, it tracks the source of each set flag.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// Conversion
	fs.Float64Var(&cfg.UTCOffset, "offset", cfg.UTCOffset, "Hours to subtract from local times (e.g. 9 for JST)")
	fs.StringVar(&cfg.WaypointFile, "wpt", cfg.WaypointFile, "Waypoint catalog file (.wpt)")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for written task files")

	// Validation
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "JSON schema overriding the bundled task schema")
	fs.BoolVar(&cfg.ValidateOutput, "validate", cfg.ValidateOutput, "Validate generated tasks against the schema")
	fs.BoolVar(&cfg.StrictValidation, "strict", cfg.StrictValidation, "Refuse to write tasks that fail validation")

	// History
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for the conversion history")
	fs.BoolVar(&cfg.History, "history", cfg.History, "Record conversions in the history file")

	// HTTP service
	fs.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "Listen address for serve")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", cfg.MaxUploadBytes, "Maximum accepted upload size")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = source
			}
		})
	}
	return nil
}
