package cmd

import (
	"errors"
	"flag"
	"fmt"

	"github.com/nibzard/report2xctsk/internal/xctsk"
)

// validateCommand checks existing task files against the schema.
func validateCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("report2xctsk validate", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	schema := fs.String("schema", e.cfg.SchemaFile, "Schema file overriding the bundled one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return errors.New("validate: no task files given")
	}

	failed := 0
	for _, path := range files {
		result := xctsk.ValidateFile(path, xctsk.ValidationOptions{SchemaPath: *schema})
		if result.Valid {
			fmt.Fprintf(e.stdout, "✅ %s\n", path)
			continue
		}
		failed++
		fmt.Fprintf(e.stdout, "❌ %s\n", path)
		for _, err := range result.Errors {
			fmt.Fprintf(e.stdout, "   %v\n", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d task files failed validation", failed, len(files))
	}
	return nil
}
