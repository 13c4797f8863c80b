// Package waypoints reads waypoint catalogs (.wpt) into description lookups.
//
// A catalog line is whitespace separated. Lines with fewer than six fields or
// whose first field starts with '$' are headers or metadata and are skipped.
// For every other line the first field is the waypoint name and the last field
// is its description:
//
//	$FormatGEO
//	B01      N 36 08 10.35    E 137 56 17.20   1120  TakeOff
package waypoints

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	// MinFields is the minimum number of fields for a catalog data line.
	MinFields = 6
	// HeaderPrefix marks catalog header and metadata lines.
	HeaderPrefix = "$"
	// Unknown is the description used for names missing from the catalog.
	Unknown = "***"
)

// Descriptions maps a waypoint name to its description.
type Descriptions map[string]string

// Lookup returns the description for name, or Unknown if it is not present.
func (d Descriptions) Lookup(name string) string {
	if desc, ok := d[name]; ok {
		return desc
	}
	return Unknown
}

// Names returns the waypoint names in sorted order.
func (d Descriptions) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadError reports a catalog that could not be opened or read.
// Callers are expected to continue with an empty Descriptions.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read waypoint catalog: %v", e.Err)
	}
	return fmt.Sprintf("read waypoint catalog %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Load reads the catalog at path. On failure it returns an empty, non-nil
// Descriptions together with a *ReadError.
func Load(path string) (Descriptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Descriptions{}, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	desc, err := Parse(f)
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = path
		}
		return Descriptions{}, err
	}
	return desc, nil
}

// Parse reads catalog lines from r. Later lines with a duplicate name
// replace earlier ones.
func Parse(r io.Reader) (Descriptions, error) {
	desc := Descriptions{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		name, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		desc[name] = value
	}
	if err := scanner.Err(); err != nil {
		return Descriptions{}, &ReadError{Err: err}
	}
	return desc, nil
}

func parseLine(line string) (name, desc string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < MinFields || strings.HasPrefix(fields[0], HeaderPrefix) {
		return "", "", false
	}
	return fields[0], fields[len(fields)-1], true
}
