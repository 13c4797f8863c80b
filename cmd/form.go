package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/report2xctsk/internal/ui"
)

// formCommand opens the interactive conversion form.
func formCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("report2xctsk form", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return ui.RunForm(ctx, e.cfg)
}
