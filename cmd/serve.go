package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/report2xctsk/internal/server"
)

// serveCommand runs the HTTP conversion service until ctx is canceled.
func serveCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("report2xctsk serve", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	addr := fs.String("addr", e.cfg.ListenAddr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	e.cfg.ListenAddr = *addr

	return server.New(e.cfg, e.logger).ListenAndServe(ctx)
}
