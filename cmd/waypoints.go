package cmd

import (
	"errors"
	"flag"
	"fmt"

	"github.com/nibzard/report2xctsk/internal/waypoints"
)

// waypointsCommand prints the name to description map of a catalog.
func waypointsCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("report2xctsk waypoints", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	path := e.cfg.WaypointFile
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	if path == "" {
		return errors.New("waypoints: no catalog given (pass a file or set waypoint_file)")
	}

	desc, err := waypoints.Load(path)
	if err != nil {
		return err
	}
	for _, name := range desc.Names() {
		fmt.Fprintf(e.stdout, "%-12s %s\n", name, desc[name])
	}
	return nil
}
