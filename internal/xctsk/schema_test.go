package xctsk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateParsedTask(t *testing.T) {
	for _, text := range []string{sampleReport, "Start gates: 12:00", ""} {
		res, err := Parse(text, 9, nil)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		result := res.Task.Validate(ValidationOptions{})
		if !result.Valid {
			t.Errorf("parsed task invalid: %v", result.Err())
		}
		if result.Err() != nil {
			t.Errorf("Err on valid result: %v", result.Err())
		}
	}
}

func TestValidateReportsPaths(t *testing.T) {
	task := NewTask([]Turnpoint{{
		Radius:   400,
		Waypoint: Waypoint{Lat: 123, Lon: 8, Name: "B01"},
	}}, []string{"25:00"}, "07:50:00Z")

	result := task.Validate(ValidationOptions{})
	if result.Valid {
		t.Fatal("expected invalid task")
	}

	var paths []string
	for _, err := range result.Errors {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
		paths = append(paths, ve.Path)
	}
	joined := strings.Join(paths, " ")
	if !strings.Contains(joined, "turnpoints[0].waypoint.lat") {
		t.Errorf("missing lat path in %q", joined)
	}
	if !strings.Contains(joined, "sss.timeGates[0]") {
		t.Errorf("missing time gate path in %q", joined)
	}
}

func TestValidateJSON(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		result := ValidateJSON([]byte("{"), ValidationOptions{})
		if result.Valid || result.Err() == nil {
			t.Fatal("expected invalid result")
		}
	})

	t.Run("missing required keys", func(t *testing.T) {
		result := ValidateJSON([]byte(`{"version": 1}`), ValidationOptions{})
		if result.Valid {
			t.Fatal("expected invalid result")
		}
	})

	t.Run("wrong version", func(t *testing.T) {
		doc := strings.Replace(wantSingleRowJSON, `"version": 1`, `"version": 2`, 1)
		result := ValidateJSON([]byte(doc), ValidationOptions{})
		if result.Valid {
			t.Fatal("expected invalid result for version 2")
		}
	})

	t.Run("extra keys from other tools are allowed", func(t *testing.T) {
		doc := strings.Replace(wantSingleRowJSON, `"earthModel": "WGS84"`, `"earthModel": "WGS84", "cylinderTolerance": 0.002`, 1)
		result := ValidateJSON([]byte(doc), ValidationOptions{})
		if !result.Valid {
			t.Fatalf("unexpected errors: %v", result.Err())
		}
	})
}

func TestValidateWithSchemaFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "strict.schema.json")
	strict := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["comment"]
}`
	if err := os.WriteFile(schemaPath, []byte(strict), 0644); err != nil {
		t.Fatal(err)
	}

	result := ValidateJSON([]byte(wantSingleRowJSON), ValidationOptions{SchemaPath: schemaPath})
	if result.Valid {
		t.Fatal("expected strict schema to reject document")
	}

	result = ValidateJSON([]byte(wantSingleRowJSON), ValidationOptions{SchemaPath: filepath.Join(dir, "missing.json")})
	if result.Valid {
		t.Fatal("expected missing schema file to fail")
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day1.xctsk")
	if err := os.WriteFile(path, []byte(wantSingleRowJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if result := ValidateFile(path, ValidationOptions{}); !result.Valid {
		t.Errorf("ValidateFile: %v", result.Err())
	}
	if result := ValidateFile(path+".missing", ValidationOptions{}); result.Valid {
		t.Error("expected missing file to be invalid")
	}
}
