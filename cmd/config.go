package cmd

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/nibzard/report2xctsk/internal/config"
)

// configCommand prints the effective configuration and where each value came from.
func configCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("report2xctsk config", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(e.stdout, config.ExampleConfig())
		return nil
	}

	cfg := e.cfg
	rows := []struct {
		key, value string
	}{
		{"utc_offset", strconv.FormatFloat(cfg.UTCOffset, 'f', -1, 64)},
		{"waypoint_file", cfg.WaypointFile},
		{"output_dir", cfg.OutputDir},
		{"schema_file", cfg.SchemaFile},
		{"validate_output", strconv.FormatBool(cfg.ValidateOutput)},
		{"strict_validation", strconv.FormatBool(cfg.StrictValidation)},
		{"log_dir", cfg.LogDir},
		{"history", strconv.FormatBool(cfg.History)},
		{"listen_addr", cfg.ListenAddr},
		{"max_upload_bytes", strconv.FormatInt(cfg.MaxUploadBytes, 10)},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", strconv.FormatBool(cfg.LogTimestamps)},
		{"log_caller", strconv.FormatBool(cfg.LogCaller)},
	}

	files := e.sources.Files
	if len(files) == 0 {
		fmt.Fprintln(e.stdout, "Config files: (none)")
	} else {
		fmt.Fprintln(e.stdout, "Config files:")
		for _, f := range files {
			fmt.Fprintf(e.stdout, "  %s\n", f)
		}
		fmt.Fprintf(e.stdout, "Active config file: %s\n", e.sources.GetConfigFile())
	}
	fmt.Fprintln(e.stdout)
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = `""`
		}
		fmt.Fprintf(e.stdout, "%-18s = %-30s # %s\n", row.key, value, e.sources.Sources[row.key])
	}
	return nil
}
