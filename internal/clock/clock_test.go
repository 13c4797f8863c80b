package clock

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestToUTC(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		offset float64
		want   string
	}{
		{"japan start gate", "13:00", 9, "04:00:00Z"},
		{"default goal deadline", "16:50", 9, "07:50:00Z"},
		{"zero offset", "12:34", 0, "12:34:00Z"},
		{"negative offset", "10:15", -5, "15:15:00Z"},
		{"half hour offset", "12:00", 5.5, "06:30:00Z"},
		{"quarter hour offset", "12:00", 5.75, "06:15:00Z"},
		{"wraps before midnight", "02:00", 9, "17:00:00Z"},
		{"wraps after midnight", "22:00", -3, "01:00:00Z"},
		{"single digit hour", "9:05", 0, "09:05:00Z"},
		{"midnight", "00:00", 0, "00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUTC(tt.local, tt.offset)
			if err != nil {
				t.Fatalf("ToUTC(%q, %v): unexpected error %v", tt.local, tt.offset, err)
			}
			if got != tt.want {
				t.Errorf("ToUTC(%q, %v): got %q, want %q", tt.local, tt.offset, got, tt.want)
			}
		})
	}
}

func TestToUTCRejectsMalformed(t *testing.T) {
	inputs := []string{"", "1300", "13:0", "24:00", "12:60", "13:00 ", " 13:00", "13:00:00", "ab:cd", "13.00"}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, err := ToUTC(in, 9)
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Value != in {
				t.Errorf("Value: got %q, want %q", fe.Value, in)
			}
		})
	}
}

func TestToUTCShapeAndRoundTrip(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2}:\d{2}:\d{2}Z$`)
	offsets := []float64{-12, -9.5, -1, 0, 1, 3.25, 5.5, 9, 14}

	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 1, 29, 30, 59} {
			local := fmt.Sprintf("%02d:%02d", h, m)
			for _, off := range offsets {
				got, err := ToUTC(local, off)
				if err != nil {
					t.Fatalf("ToUTC(%q, %v): %v", local, off, err)
				}
				if !shape.MatchString(got) {
					t.Fatalf("ToUTC(%q, %v) = %q does not match HH:MM:SSZ", local, off, got)
				}

				utc, err := time.Parse(UTCLayout+"Z", got)
				if err != nil {
					t.Fatalf("parse back %q: %v", got, err)
				}
				back := utc.Add(Offset(off)).Format(LocalLayout)
				if back != local {
					t.Errorf("round trip %q offset %v: got %q", local, off, back)
				}
			}
		}
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(5.5); got != 5*time.Hour+30*time.Minute {
		t.Errorf("Offset(5.5): got %v", got)
	}
	if got := Offset(-9); got != -9*time.Hour {
		t.Errorf("Offset(-9): got %v", got)
	}
}
