package xctsk

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const wantSingleRowJSON = `{
  "version": 1,
  "taskType": "CLASSIC",
  "turnpoints": [
    {
      "radius": 400,
      "waypoint": {
        "lon": 8.2,
        "lat": 46.1,
        "altSmoothed": 1200,
        "name": "TP1",
        "description": "***"
      }
    }
  ],
  "sss": {
    "type": "RACE",
    "direction": "EXIT",
    "timeGates": [
      "04:00:00Z"
    ]
  },
  "goal": {
    "type": "CYLINDER",
    "deadline": "07:50:00Z"
  },
  "earthModel": "WGS84"
}
`

func TestMarshalLayout(t *testing.T) {
	res, err := Parse("1\tpos\tTP1\t400 m\t\t\tLat: 46.1 Lon: 8.2\t1200 m\nStart gates: 13:00\n", 9, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := res.Task.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != wantSingleRowJSON {
		t.Errorf("Marshal:\n%s\nwant:\n%s", data, wantSingleRowJSON)
	}
}

func TestMarshalWritesTextLiterally(t *testing.T) {
	task := NewTask([]Turnpoint{{
		Radius:   400,
		Waypoint: Waypoint{Name: "B01", Description: "離陸場<A&B>"},
		Type:     TypeTakeoff,
	}}, nil, "07:50:00Z")
	data, err := task.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"description": "離陸場<A&B>"`) {
		t.Errorf("description escaped:\n%s", data)
	}
	if !strings.Contains(string(data), `"type": "TAKEOFF"`) {
		t.Errorf("turnpoint type missing:\n%s", data)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"task1", "task1.xctsk"},
		{"task1.xctsk", "task1.xctsk"},
		{"task1.json", "task1.json.xctsk"},
		{"dir/day 2", "dir/day 2.xctsk"},
	}
	for _, tt := range tests {
		if got := FileName(tt.in); got != tt.want {
			t.Errorf("FileName(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	res, err := Parse(sampleReport, 9, nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := res.Task.Save(filepath.Join(dir, "day1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "day1.xctsk" {
		t.Errorf("saved path: got %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(raw), "}\n") {
		t.Error("expected trailing newline")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, res.Task) {
		t.Errorf("Load: got %+v, want %+v", loaded, res.Task)
	}
}

func TestSaveUnwritableDirectory(t *testing.T) {
	task := NewTask(nil, nil, "07:50:00Z")
	_, err := task.Save(filepath.Join(t.TempDir(), "missing", "day1"))
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
