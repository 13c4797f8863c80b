package xctsk

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nibzard/report2xctsk/internal/clock"
	"github.com/nibzard/report2xctsk/internal/waypoints"
)

// Report layout.
const (
	// StartGatesPrefix starts the line listing comma separated start gate times.
	StartGatesPrefix = "Start gates:"
	// HeaderPrefix starts the column header line of the turnpoint table.
	HeaderPrefix = "No"
	// DefaultDeadline is the local goal deadline used for reports of two lines or fewer.
	DefaultDeadline = "16:50"

	minRowFields  = 8
	seqField      = 0
	idField       = 2
	radiusField   = 3
	deadlineField = 5
	positionField = 6
	altitudeField = 7

	latLabel = "Lat:"
	lonLabel = "Lon:"
)

var errNotFinite = errors.New("value is not finite")

// SkippedRow is a non-blank table line with too few tab fields to be a turnpoint.
type SkippedRow struct {
	Line   int
	Fields int
	Text   string
}

func (s SkippedRow) String() string {
	return fmt.Sprintf("line %d: skipped row with %d tab fields (need %d): %q", s.Line, s.Fields, minRowFields, s.Text)
}

// Result is the outcome of parsing a report.
type Result struct {
	Task    *Task
	Skipped []SkippedRow
}

// Warnings returns one message per skipped row.
func (r *Result) Warnings() []string {
	if r == nil {
		return nil
	}
	warnings := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		warnings = append(warnings, s.String())
	}
	return warnings
}

// Parse converts report text into a task. offsetHours is local minus UTC.
// Names missing from descriptions get the waypoints.Unknown description.
//
// The goal deadline is read from the second-to-last line of the report
// (tab field 5); reports of two lines or fewer use DefaultDeadline.
func Parse(text string, offsetHours float64, descriptions waypoints.Descriptions) (*Result, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	gates, err := parseStartGates(lines, offsetHours)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	turnpoints := make([]Turnpoint, 0, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, HeaderPrefix) || strings.HasPrefix(line, StartGatesPrefix) || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < minRowFields {
			result.Skipped = append(result.Skipped, SkippedRow{Line: i + 1, Fields: len(fields), Text: line})
			continue
		}
		tp, err := parseTurnpoint(i+1, fields, descriptions)
		if err != nil {
			return nil, err
		}
		turnpoints = append(turnpoints, tp)
	}

	deadline, err := parseDeadline(lines, offsetHours)
	if err != nil {
		return nil, err
	}

	result.Task = NewTask(turnpoints, gates, deadline)
	return result, nil
}

// parseStartGates collects the gates of every "Start gates:" line in order.
func parseStartGates(lines []string, offsetHours float64) ([]string, error) {
	var gates []string
	for i, line := range lines {
		if !strings.HasPrefix(line, StartGatesPrefix) {
			continue
		}
		_, rest, _ := strings.Cut(line, ":")
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}
		for _, tok := range strings.Split(rest, ",") {
			utc, err := clock.ToUTC(strings.TrimSpace(tok), offsetHours)
			if err != nil {
				return nil, &TimeError{Line: i + 1, What: "start gate", Err: err}
			}
			gates = append(gates, utc)
		}
	}
	return gates, nil
}

func parseTurnpoint(line int, fields []string, descriptions waypoints.Descriptions) (Turnpoint, error) {
	no := strings.TrimSpace(fields[seqField])
	id := strings.TrimSpace(fields[idField])

	radius, err := parseNumber(line, "radius", fields[radiusField], "m")
	if err != nil {
		return Turnpoint{}, err
	}

	latText, lonText, ok := splitPosition(fields[positionField])
	if !ok {
		return Turnpoint{}, &CoordinateError{Line: line, Value: fields[positionField]}
	}
	lat, err := parseNumber(line, "lat", latText, latLabel)
	if err != nil {
		return Turnpoint{}, err
	}
	lon, err := parseNumber(line, "lon", lonText, lonLabel)
	if err != nil {
		return Turnpoint{}, err
	}

	alt, err := parseNumber(line, "altitude", fields[altitudeField], "m")
	if err != nil {
		return Turnpoint{}, err
	}

	return Turnpoint{
		Radius: radius,
		Waypoint: Waypoint{
			Lon:         lon,
			Lat:         lat,
			AltSmoothed: alt,
			Name:        id,
			Description: descriptions.Lookup(id),
		},
		Type: Classify(no, id),
	}, nil
}

// Classify infers the turnpoint role from its name and sequence number.
// Matching is by substring and the first rule wins: a name containing "TO"
// is the takeoff, then a sequence number containing "SS" is the start of
// speed section, then one containing "ES" is the end of speed section.
func Classify(no, id string) TurnpointType {
	switch {
	case strings.Contains(id, "TO"):
		return TypeTakeoff
	case strings.Contains(no, "SS"):
		return TypeSSS
	case strings.Contains(no, "ES"):
		return TypeESS
	default:
		return ""
	}
}

// splitPosition extracts the latitude and longitude tokens from a
// "Lat: <lat> Lon: <lon>" field. The values are the second and fourth
// whitespace separated tokens; their labels are removed by the caller.
func splitPosition(field string) (lat, lon string, ok bool) {
	tokens := strings.Fields(field)
	if len(tokens) < 4 {
		return "", "", false
	}
	return tokens[1], tokens[3], true
}

// parseNumber removes every occurrence of strip from raw and parses the rest.
func parseNumber(line int, name, raw, strip string) (float64, error) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, strip, ""))
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &NumberError{Line: line, Field: name, Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumberError{Line: line, Field: name, Value: raw, Err: errNotFinite}
	}
	return v, nil
}

func parseDeadline(lines []string, offsetHours float64) (string, error) {
	local := DefaultDeadline
	line := 0
	if len(lines) > 2 {
		line = len(lines) - 1
		fields := strings.Split(lines[len(lines)-2], "\t")
		if len(fields) <= deadlineField {
			return "", &GoalRowError{Line: line, Fields: len(fields)}
		}
		local = ""
		if tokens := strings.Fields(fields[deadlineField]); len(tokens) > 0 {
			local = tokens[0]
		}
	}

	utc, err := clock.ToUTC(local, offsetHours)
	if err != nil {
		return "", &TimeError{Line: line, What: "goal deadline", Err: err}
	}
	return utc, nil
}
