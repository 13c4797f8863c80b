package xctsk

import "fmt"

// NumberError reports a radius, altitude or coordinate value that is not a
// number once its unit or label is removed.
type NumberError struct {
	Line  int    // 1-based line in the report
	Field string // radius, altitude, lat or lon
	Value string // raw field text
	Err   error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q", e.Line, e.Field, e.Value)
}

// Unwrap returns the underlying strconv error.
func (e *NumberError) Unwrap() error {
	return e.Err
}

// CoordinateError reports a position field that does not have the
// "Lat: <lat> Lon: <lon>" layout.
type CoordinateError struct {
	Line  int
	Value string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("line %d: position %q: expected \"Lat: <lat> Lon: <lon>\"", e.Line, e.Value)
}

// GoalRowError reports a goal row (second-to-last line) without a deadline column.
type GoalRowError struct {
	Line   int
	Fields int
}

func (e *GoalRowError) Error() string {
	return fmt.Sprintf("line %d: goal row has %d tab fields, need at least %d", e.Line, e.Fields, deadlineField+1)
}

// TimeError locates a time-of-day failure in the report.
type TimeError struct {
	Line int
	What string // "start gate" or "goal deadline"
	Err  error
}

func (e *TimeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.What, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.What, e.Err)
}

// Unwrap returns the underlying *clock.FormatError.
func (e *TimeError) Unwrap() error {
	return e.Err
}
