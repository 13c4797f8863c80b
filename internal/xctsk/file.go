package xctsk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Extension is the file extension of task files.
const Extension = ".xctsk"

// FileName returns name with the .xctsk extension appended unless it already
// ends with it.
func FileName(name string) string {
	if strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}

// Marshal encodes the task with 2-space indentation and a trailing newline.
// Non-ASCII text and HTML characters are written literally.
func (t *Task) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("marshal task: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the task to path, appending the .xctsk extension when missing.
// It returns the path actually written.
func (t *Task) Save(path string) (string, error) {
	data, err := t.Marshal()
	if err != nil {
		return "", err
	}
	path = FileName(path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write task file: %w", err)
	}
	return path, nil
}

// Load reads and parses a task file from path.
func Load(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return &t, nil
}
