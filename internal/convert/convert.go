// Package convert runs one report-to-task conversion: it resolves waypoint
// descriptions, parses the report, validates and writes the task, and reports
// the outcome to a Notifier.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nibzard/report2xctsk/internal/logging"
	"github.com/nibzard/report2xctsk/internal/waypoints"
	"github.com/nibzard/report2xctsk/internal/xctsk"
)

// ErrEmptyReport is returned when the request carries no report text.
var ErrEmptyReport = errors.New("task report is empty")

// Notifier receives user-facing messages about a conversion.
type Notifier interface {
	NotifySuccess(msg string)
	NotifyWarning(msg string)
	NotifyError(msg string)
}

var _ Notifier = (*logging.Notifier)(nil)

// Request describes a single conversion. It is not modified by Convert.
type Request struct {
	// Report is the pasted task report.
	Report string
	// Source labels the report in messages and history (file name, "stdin", "form").
	Source string
	// UTCOffset is subtracted from every local time in the report.
	UTCOffset float64

	// Waypoints, when non-nil, is used instead of reading WaypointFile.
	Waypoints    waypoints.Descriptions
	WaypointFile string

	// Output is the task file name; ".xctsk" is appended when missing.
	// An empty Output converts without writing a file.
	Output    string
	OutputDir string

	Validate   bool
	Strict     bool
	SchemaPath string
}

// Result is the outcome of a successful conversion.
type Result struct {
	Task *xctsk.Task
	// Data is the encoded task document.
	Data []byte
	// Path is the written file, empty when nothing was written.
	Path     string
	Warnings []string
}

// Converter runs conversions and reports to a Notifier.
type Converter struct {
	notifier   Notifier
	historyDir string
	now        func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithHistory records every conversion in the history file under dir.
func WithHistory(dir string) Option {
	return func(c *Converter) {
		c.historyDir = dir
	}
}

// WithClock sets the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// New returns a Converter reporting to n. A nil n discards messages.
func New(n Notifier, opts ...Option) *Converter {
	if n == nil {
		n = discard{}
	}
	c := &Converter{notifier: n, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs req. On failure a single error notification is sent, nothing
// is written, and the error is returned.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	res, err := c.convert(ctx, req)
	c.record(req, res, err)
	if err != nil {
		c.notifier.NotifyError(fmt.Sprintf("%s: %v", sourceLabel(req), err))
		return nil, err
	}

	if res.Path != "" {
		c.notifier.NotifySuccess(fmt.Sprintf("wrote %s (%d turnpoints, %d time gates)",
			res.Path, len(res.Task.Turnpoints), len(res.Task.SSS.TimeGates)))
	} else {
		c.notifier.NotifySuccess(fmt.Sprintf("converted %s (%d turnpoints, %d time gates)",
			sourceLabel(req), len(res.Task.Turnpoints), len(res.Task.SSS.TimeGates)))
	}
	return res, nil
}

func (c *Converter) convert(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Report) == "" {
		return nil, ErrEmptyReport
	}

	res := &Result{}
	descriptions := req.Waypoints
	if descriptions == nil && req.WaypointFile != "" {
		var err error
		descriptions, err = waypoints.Load(req.WaypointFile)
		if err != nil {
			c.warn(res, err.Error())
		}
	}

	parsed, err := xctsk.Parse(req.Report, req.UTCOffset, descriptions)
	if err != nil {
		return nil, err
	}
	res.Task = parsed.Task
	for _, w := range parsed.Warnings() {
		c.warn(res, w)
	}

	if req.Validate {
		vr := res.Task.Validate(xctsk.ValidationOptions{SchemaPath: req.SchemaPath})
		if !vr.Valid {
			if req.Strict {
				return nil, fmt.Errorf("task failed validation: %w", vr.Err())
			}
			for _, verr := range vr.Errors {
				c.warn(res, "schema: "+verr.Error())
			}
		}
	}

	res.Data, err = res.Task.Marshal()
	if err != nil {
		return nil, err
	}

	if req.Output == "" {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Path, err = res.Task.Save(outputPath(req.OutputDir, req.Output))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Converter) warn(res *Result, msg string) {
	res.Warnings = append(res.Warnings, msg)
	c.notifier.NotifyWarning(msg)
}

// record appends the conversion to the history. History failures only warn.
func (c *Converter) record(req Request, res *Result, err error) {
	if c.historyDir == "" {
		return
	}
	entry := logging.Entry{
		Time:      c.now().UTC(),
		Source:    sourceLabel(req),
		UTCOffset: req.UTCOffset,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if res != nil && res.Task != nil {
		entry.Output = res.Path
		entry.Turnpoints = len(res.Task.Turnpoints)
		entry.TimeGates = len(res.Task.SSS.TimeGates)
		entry.Warnings = res.Warnings
	}
	if herr := logging.AppendHistory(c.historyDir, entry); herr != nil {
		c.notifier.NotifyWarning(fmt.Sprintf("history not recorded: %v", herr))
	}
}

func outputPath(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func sourceLabel(req Request) string {
	if req.Source != "" {
		return req.Source
	}
	return "report"
}

type discard struct{}

func (discard) NotifySuccess(string) {}
func (discard) NotifyWarning(string) {}
func (discard) NotifyError(string)   {}
