package xctsk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/report2xctsk/internal/utils"
)

// bundledSchemaURL names the embedded schema resource inside the compiler.
const bundledSchemaURL = "xctsk.schema.json"

// bundledSchema is the embedded JSON Schema of the documents this tool writes.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "XCTrack classic task",
  "type": "object",
  "required": ["version", "taskType", "turnpoints", "sss", "goal", "earthModel"],
  "$defs": {
    "utcTime": { "type": "string", "pattern": "^[0-2][0-9]:[0-5][0-9]:[0-5][0-9]Z$" }
  },
  "properties": {
    "version": { "type": "integer", "const": 1 },
    "taskType": { "type": "string", "const": "CLASSIC" },
    "earthModel": { "type": "string", "enum": ["WGS84", "FAI_SPHERE"] },
    "turnpoints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["radius", "waypoint"],
        "properties": {
          "radius": { "type": "number" },
          "type": { "type": "string", "enum": ["TAKEOFF", "SSS", "ESS"] },
          "waypoint": {
            "type": "object",
            "required": ["lon", "lat", "altSmoothed", "name"],
            "properties": {
              "lon": { "type": "number", "minimum": -180, "maximum": 180 },
              "lat": { "type": "number", "minimum": -90, "maximum": 90 },
              "altSmoothed": { "type": "number" },
              "name": { "type": "string" },
              "description": { "type": "string" }
            }
          }
        }
      }
    },
    "sss": {
      "type": "object",
      "required": ["type", "direction"],
      "properties": {
        "type": { "type": "string", "enum": ["RACE", "ELAPSED-TIME"] },
        "direction": { "type": "string", "enum": ["ENTER", "EXIT"] },
        "timeGates": { "type": "array", "minItems": 1, "items": { "$ref": "#/$defs/utcTime" } }
      }
    },
    "goal": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": { "type": "string", "enum": ["CYLINDER", "LINE"] },
        "deadline": { "$ref": "#/$defs/utcTime" }
      }
    }
  }
}`

// BundledSchema returns the embedded task schema JSON.
func BundledSchema() string {
	return bundledSchema
}

// ValidationError represents a schema violation with its document location.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the bundled schema when set.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err joins the result errors, or returns nil for a valid document.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

// Validate checks a task against the schema.
func (t *Task) Validate(opts ValidationOptions) *ValidationResult {
	data, err := json.Marshal(t)
	if err != nil {
		return invalid(fmt.Errorf("marshal task: %w", err))
	}
	return ValidateJSON(data, opts)
}

// ValidateFile checks an existing .xctsk document against the schema.
func ValidateFile(path string, opts ValidationOptions) *ValidationResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return invalid(fmt.Errorf("read task file: %w", err))
	}
	return ValidateJSON(data, opts)
}

// ValidateJSON checks raw JSON against the schema.
func ValidateJSON(data []byte, opts ValidationOptions) *ValidationResult {
	schema, err := compileSchema(opts.SchemaPath)
	if err != nil {
		return invalid(err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return invalid(fmt.Errorf("parse task file: %w", err))
	}

	result := &ValidationResult{Valid: true, Errors: make([]error, 0)}
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("invalid schema path: %w", err)
		}
		schema, err := compiler.Compile(absPath)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", absPath, err)
		}
		return schema, nil
	}

	if err := compiler.AddResource(bundledSchemaURL, strings.NewReader(bundledSchema)); err != nil {
		return nil, fmt.Errorf("load bundled schema: %w", err)
	}
	schema, err := compiler.Compile(bundledSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile bundled schema: %w", err)
	}
	return schema, nil
}

func invalid(err error) *ValidationResult {
	return &ValidationResult{Valid: false, Errors: []error{err}}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
