package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/report2xctsk/internal/logging"
)

// historyCommand prints the most recent conversions.
func historyCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("report2xctsk history", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	n := fs.Int("n", 20, "Number of entries to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := logging.ReadHistory(e.cfg.LogDir, *n)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(e.stdout, "No conversions recorded.")
		return nil
	}
	logging.PrintHistory(e.stdout, entries)
	return nil
}
