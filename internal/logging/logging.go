// Package logging provides console logging with charmbracelet/log and the
// JSONL conversion history.
package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// HistoryFile is the name of the conversion history inside the log directory.
const HistoryFile = "history.jsonl"

// Options holds configuration for console logging.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for console logging.
func DefaultOptions() Options {
	return Options{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "report2xctsk",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// NewFromConfig creates a logger writing to w from string configuration values.
func NewFromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	opts := DefaultOptions()
	opts.Level = ParseLevel(level)
	opts.Formatter = ParseFormatter(format)
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return New(w, opts)
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Notifier reports conversion outcomes through a logger.
type Notifier struct {
	logger *log.Logger
}

// NewNotifier returns a notifier writing to logger.
func NewNotifier(logger *log.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// NotifySuccess logs a success message.
func (n *Notifier) NotifySuccess(msg string) {
	n.logger.Info(msg)
}

// NotifyWarning logs a non-fatal problem.
func (n *Notifier) NotifyWarning(msg string) {
	n.logger.Warn(msg)
}

// NotifyError logs a failure.
func (n *Notifier) NotifyError(msg string) {
	n.logger.Error(msg)
}

// Entry is one line of the conversion history.
type Entry struct {
	Time       time.Time `json:"time"`
	Source     string    `json:"source"`
	Output     string    `json:"output,omitempty"`
	UTCOffset  float64   `json:"utc_offset"`
	Turnpoints int       `json:"turnpoints"`
	TimeGates  int       `json:"time_gates"`
	Warnings   []string  `json:"warnings,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// AppendHistory appends e to the history file in dir, creating dir if needed.
func AppendHistory(dir string, e Entry) error {
	if dir == "" {
		return fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, HistoryFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// ReadHistory returns the last n entries of the history in dir (all when n <= 0).
// A missing history file yields no entries. Lines that are not valid JSON are skipped.
func ReadHistory(dir string, n int) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, HistoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// PrintHistory writes entries one per line in a human readable form.
func PrintHistory(w io.Writer, entries []Entry) {
	for _, e := range entries {
		status := "ok"
		if e.Error != "" {
			status = "error: " + e.Error
		}
		fmt.Fprintf(w, "%s  %-24s -> %s  tp=%d gates=%d offset=%g  %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), e.Source, e.Output,
			e.Turnpoints, e.TimeGates, e.UTCOffset, status)
	}
}
