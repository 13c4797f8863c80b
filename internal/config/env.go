package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nibzard/report2xctsk/internal/utils"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "XCTSK_"

// envVar binds one environment variable to a config field.
type envVar struct {
	name  string
	field string
	apply func(cfg *Config, v string) error
}

func envVars() []envVar {
	str := func(dst func(*Config) *string) func(*Config, string) error {
		return func(cfg *Config, v string) error {
			*dst(cfg) = v
			return nil
		}
	}
	boolean := func(dst func(*Config) *bool) func(*Config, string) error {
		return func(cfg *Config, v string) error {
			*dst(cfg) = boolFromString(v)
			return nil
		}
	}

	return []envVar{
		{"UTC_OFFSET", "utc_offset", func(cfg *Config, v string) error {
			offset, err := utils.ParseOffset(v)
			if err != nil {
				return err
			}
			cfg.UTCOffset = offset
			return nil
		}},
		{"WPT", "waypoint_file", str(func(c *Config) *string { return &c.WaypointFile })},
		{"OUTPUT_DIR", "output_dir", str(func(c *Config) *string { return &c.OutputDir })},
		{"SCHEMA", "schema_file", str(func(c *Config) *string { return &c.SchemaFile })},
		{"VALIDATE", "validate_output", boolean(func(c *Config) *bool { return &c.ValidateOutput })},
		{"STRICT", "strict_validation", boolean(func(c *Config) *bool { return &c.StrictValidation })},
		{"LOG_DIR", "log_dir", str(func(c *Config) *string { return &c.LogDir })},
		{"HISTORY", "history", boolean(func(c *Config) *bool { return &c.History })},
		{"LISTEN_ADDR", "listen_addr", str(func(c *Config) *string { return &c.ListenAddr })},
		{"MAX_UPLOAD_BYTES", "max_upload_bytes", func(cfg *Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid byte count %q", v)
			}
			cfg.MaxUploadBytes = n
			return nil
		}},
		{"LOG_LEVEL", "log_level", str(func(c *Config) *string { return &c.LogLevel })},
		{"LOG_FORMAT", "log_format", str(func(c *Config) *string { return &c.LogFormat })},
		{"LOG_TIMESTAMPS", "log_timestamps", boolean(func(c *Config) *bool { return &c.LogTimestamps })},
		{"LOG_CALLER", "log_caller", boolean(func(c *Config) *bool { return &c.LogCaller })},
	}
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	return loadFromEnvHelper(cfg, nil, "")
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) error {
	for _, ev := range envVars() {
		v := os.Getenv(EnvPrefix + ev.name)
		if v == "" {
			continue
		}
		if err := ev.apply(cfg, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, ev.name, err)
		}
		if sources != nil {
			sources[ev.field] = source
		}
	}
	return nil
}

func boolFromString(v string) bool {
	return utils.ParseBool(v)
}
