// Package clock converts local time-of-day strings to UTC using a fixed hour offset.
//
// Only the time of day is produced. There is no timezone database, no DST and
// no date carry: a conversion that crosses midnight wraps the hour within
// 00-23 without marking the adjacent day.
package clock

import (
	"fmt"
	"math"
	"time"
)

const (
	// LocalLayout is the accepted local time-of-day layout (24-hour HH:MM).
	LocalLayout = "15:04"
	// UTCLayout is the emitted UTC layout; a literal Z is appended.
	UTCLayout = "15:04:05"
)

// FormatError reports a time-of-day token that does not match HH:MM.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM", e.Value)
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// ToUTC converts a local "HH:MM" string to "HH:MM:SSZ" in UTC.
// offsetHours is local minus UTC, so UTC = local - offset. Fractional offsets
// such as 5.5 or 5.75 are allowed.
func ToUTC(local string, offsetHours float64) (string, error) {
	t, err := time.Parse(LocalLayout, local)
	if err != nil {
		return "", &FormatError{Value: local, Err: err}
	}
	return t.Add(-Offset(offsetHours)).Format(UTCLayout) + "Z", nil
}

// Offset converts an hour offset to a duration, rounded to the nearest second.
func Offset(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}
