// Package logging provides tests for console logging and the conversion history.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json formatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt formatter")
	}
	if ParseFormatter("text") != log.TextFormatter || ParseFormatter("") != log.TextFormatter {
		t.Error("text formatter")
	}
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Prefix = ""
	n := NewNotifier(New(&buf, opts))

	n.NotifySuccess("wrote day1.xctsk")
	n.NotifyWarning("catalog missing")
	n.NotifyError("line 3: invalid radius")

	out := buf.String()
	for _, want := range []string{"INFO", "wrote day1.xctsk", "WARN", "catalog missing", "ERRO", "line 3: invalid radius"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNotifierRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = log.ErrorLevel
	n := NewNotifier(New(&buf, opts))

	n.NotifySuccess("hidden")
	n.NotifyWarning("hidden too")
	if buf.Len() != 0 {
		t.Errorf("expected no output below error level, got %q", buf.String())
	}
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "warn", "json", false, false)
	logger.Info("hidden")
	logger.Warn("catalog missing", "path", "comp.wpt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"catalog missing"`) || !strings.Contains(out, `"path":"comp.wpt"`) {
		t.Errorf("expected JSON output, got:\n%s", out)
	}
}

func TestHistory(t *testing.T) {
	t.Run("append and read back", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		for i, out := range []string{"a.xctsk", "b.xctsk", "c.xctsk"} {
			e := Entry{Source: "report.txt", Output: out, UTCOffset: 9, Turnpoints: i + 1}
			if err := AppendHistory(dir, e); err != nil {
				t.Fatalf("AppendHistory: %v", err)
			}
		}

		all, err := ReadHistory(dir, 0)
		if err != nil {
			t.Fatalf("ReadHistory: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("got %d entries, want 3", len(all))
		}
		if all[0].Time.IsZero() {
			t.Error("expected time to be filled in")
		}

		last, err := ReadHistory(dir, 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(last) != 2 || last[0].Output != "b.xctsk" || last[1].Output != "c.xctsk" {
			t.Errorf("last 2: got %+v", last)
		}
	})

	t.Run("missing history is empty", func(t *testing.T) {
		entries, err := ReadHistory(t.TempDir(), 10)
		if err != nil {
			t.Fatalf("ReadHistory: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %v", entries)
		}
	})

	t.Run("corrupt lines are skipped", func(t *testing.T) {
		dir := t.TempDir()
		content := "not json\n\n{\"source\":\"ok\",\"turnpoints\":2}\n"
		if err := os.WriteFile(filepath.Join(dir, HistoryFile), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		entries, err := ReadHistory(dir, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Source != "ok" {
			t.Errorf("got %+v", entries)
		}
	})

	t.Run("empty dir is an error", func(t *testing.T) {
		if err := AppendHistory("", Entry{}); err == nil {
			t.Error("expected error for empty dir")
		}
	})
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	PrintHistory(&buf, []Entry{
		{Time: time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC), Source: "stdin", Output: "day1.xctsk", Turnpoints: 5, TimeGates: 2, UTCOffset: 9},
		{Time: time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC), Source: "stdin", Error: "line 2: invalid radius"},
	})
	out := buf.String()
	if !strings.Contains(out, "day1.xctsk") || !strings.Contains(out, "tp=5 gates=2 offset=9") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "error: line 2: invalid radius") {
		t.Errorf("missing error line:\n%s", out)
	}
}
