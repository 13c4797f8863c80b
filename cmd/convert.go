package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/report2xctsk/internal/convert"
	"github.com/nibzard/report2xctsk/internal/logging"
	"github.com/nibzard/report2xctsk/internal/parallel"
	"github.com/nibzard/report2xctsk/internal/utils"
	"github.com/nibzard/report2xctsk/internal/xctsk"
)

// convertCommand converts reports to task files. With several report files
// they are converted concurrently, each to <report name>.xctsk.
func convertCommand(ctx context.Context, e *env, args []string) error {
	cfg := e.cfg
	fs := flag.NewFlagSet("report2xctsk convert", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	reportPath := fs.String("report", "", "Report file (default: arguments, then stdin)")
	output := fs.String("o", "", "Output task name; .xctsk is appended when missing")
	wpt := fs.String("wpt", cfg.WaypointFile, "Waypoint catalog file")
	offset := fs.Float64("offset", cfg.UTCOffset, "Hours subtracted from local times")
	toStdout := fs.Bool("stdout", false, "Print the task instead of writing a file")
	workers := fs.Int("j", runtime.NumCPU(), "Reports converted at once")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *offset < -14 || *offset > 14 {
		return fmt.Errorf("invalid UTC offset %g: must be between -14 and 14 hours", *offset)
	}

	files := fs.Args()
	if *reportPath != "" {
		files = append([]string{*reportPath}, files...)
	}

	base := convert.Request{
		UTCOffset:    *offset,
		WaypointFile: *wpt,
		OutputDir:    cfg.OutputDir,
		Validate:     cfg.ValidateOutput,
		Strict:       cfg.StrictValidation,
		SchemaPath:   cfg.SchemaFile,
	}
	var opts []convert.Option
	if cfg.History {
		opts = append(opts, convert.WithHistory(cfg.LogDir))
	}
	converter := convert.New(logging.NewNotifier(e.logger), opts...)

	if len(files) > 1 {
		if *output != "" || *toStdout {
			return errors.New("-o and -stdout take a single report")
		}
		return convertBatch(ctx, converter, base, files, *workers)
	}

	req := base
	switch len(files) {
	case 1:
		data, err := os.ReadFile(files[0])
		if err != nil {
			return fmt.Errorf("reading report: %w", err)
		}
		req.Report, req.Source = string(data), filepath.Base(files[0])
		req.Output = reportTaskName(files[0])
	default:
		if utils.IsTerminal(e.stdin) {
			return errors.New("no report given: pass a file, -report, or pipe the report on stdin")
		}
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		req.Report, req.Source = string(data), "stdin"
		if *output == "" && !*toStdout {
			return errors.New("output name required when reading stdin (use -o or -stdout)")
		}
	}
	if *output != "" {
		req.Output = *output
	}
	if *toStdout {
		req.Output = ""
	}

	res, err := converter.Convert(ctx, req)
	if err != nil {
		return err
	}
	if *toStdout {
		_, err = e.stdout.Write(res.Data)
		return err
	}
	return nil
}

// convertBatch converts every file with at most workers conversions running.
func convertBatch(ctx context.Context, converter *convert.Converter, base convert.Request, files []string, workers int) error {
	if err := checkBatchOutputs(base.OutputDir, files); err != nil {
		return err
	}

	pool := parallel.NewWorkerPool[*convert.Result](ctx, max(workers, 1), false)
	for _, path := range files {
		pool.Submit(path, func(ctx context.Context) (*convert.Result, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading report: %w", err)
			}
			req := base
			req.Report = string(data)
			req.Source = filepath.Base(path)
			req.Output = reportTaskName(path)
			return converter.Convert(ctx, req)
		})
	}

	_, errs := pool.Wait()
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d reports failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}

// checkBatchOutputs rejects a batch in which two reports would write the
// same task file.
func checkBatchOutputs(dir string, files []string) error {
	seen := make(map[string]string, len(files))
	for _, path := range files {
		out := filepath.Clean(filepath.Join(dir, xctsk.FileName(reportTaskName(path))))
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%s and %s would both write %s; convert them separately with -o", prev, path, out)
		}
		seen[out] = path
	}
	return nil
}

// reportTaskName derives the task name from a report path.
func reportTaskName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
