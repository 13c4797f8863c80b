// Package cmd implements the CLI command structure for report2xctsk.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/report2xctsk/internal/config"
	"github.com/nibzard/report2xctsk/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries the loaded configuration and the process streams to commands.
type env struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the report2xctsk CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("report2xctsk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	cfg := cws.Config
	e := &env{
		cfg:     cfg,
		sources: cws,
		logger:  logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	for _, key := range cws.Unknown {
		e.logger.Warn("unknown config key", "key", key)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "convert" as default
	subcommand := "convert"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "convert":
		return convertCommand(ctx, e, remainingArgs)
	case "form":
		return formCommand(ctx, e, remainingArgs)
	case "serve":
		return serveCommand(ctx, e, remainingArgs)
	case "validate":
		return validateCommand(e, remainingArgs)
	case "waypoints":
		return waypointsCommand(e, remainingArgs)
	case "history":
		return historyCommand(e, remainingArgs)
	case "config":
		return configCommand(e, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		// An existing file is a report to convert; flags must precede it
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return convertCommand(ctx, e, append(remainingArgs, subcommand))
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "report2xctsk version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "report2xctsk - Convert competition task reports to XCTrack .xctsk files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  report2xctsk [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert [file]       Convert a report (default command, reads stdin without a file)")
	fmt.Fprintln(w, "  form                 Open the interactive form")
	fmt.Fprintln(w, "  serve                Serve the conversion over HTTP")
	fmt.Fprintln(w, "  validate file...     Check .xctsk files against the task schema")
	fmt.Fprintln(w, "  waypoints [file]     Print the descriptions of a waypoint catalog")
	fmt.Fprintln(w, "  history              Show recent conversions")
	fmt.Fprintln(w, "  config               Show the effective configuration")
	fmt.Fprintln(w, "  version              Show version information")
	fmt.Fprintln(w, "  help                 Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Options (use with 'convert' command):")
	fmt.Fprintln(w, "  -report string")
	fmt.Fprintln(w, "        Report file (default: first argument, then stdin)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output task name; .xctsk is appended when missing")
	fmt.Fprintln(w, "  -wpt string")
	fmt.Fprintln(w, "        Waypoint catalog file")
	fmt.Fprintln(w, "  -offset float")
	fmt.Fprintln(w, "        Hours subtracted from local times (default 9)")
	fmt.Fprintln(w, "  -stdout")
	fmt.Fprintln(w, "        Print the task instead of writing a file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History Options (use with 'history' command):")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of entries to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables use the XCTSK_ prefix (e.g. XCTSK_UTC_OFFSET).")
}
