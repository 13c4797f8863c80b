package utils

import (
	"bytes"
	"testing"
)

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		if !ParseBool(s) {
			t.Errorf("ParseBool(%q): got false", s)
		}
	}
	for _, s := range []string{"", "0", "false", "no", "off", "maybe"} {
		if ParseBool(s) {
			t.Errorf("ParseBool(%q): got true", s)
		}
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"9", 9, false},
		{" -3 ", -3, false},
		{"+5.5", 5.5, false},
		{"14", 14, false},
		{"15", 0, true},
		{"-14.5", 0, true},
		{"JST", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOffset(%q): err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseOffset(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/sss/type", "sss.type"},
		{"#/turnpoints/0/waypoint/lat", "turnpoints[0].waypoint.lat"},
		{"/a~1b/c~0d", "a/b.c~d"},
		{"/sss/timeGates/2", "sss.timeGates[2]"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.in); got != tt.want {
			t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("bytes.Buffer reported as terminal")
	}
}
