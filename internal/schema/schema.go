// Package schema validates configuration entries against a JSON Schema.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/kvconf/internal/conf"
	"github.com/nibzard/kvconf/internal/utils"
)

// ErrSchemaNotFound is returned when the schema file does not exist.
var ErrSchemaNotFound = errors.New("schema file not found")

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending entry
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

// Result contains validation results.
type Result struct {
	Valid  bool
	Errors []error
}

// Schema is a compiled JSON Schema.
type Schema struct {
	path   string
	schema *jsonschema.Schema
}

// Compile loads and compiles the schema at path.
func Compile(path string) (*Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, absPath)
		}
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	s, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return &Schema{path: absPath, schema: s}, nil
}

// Path returns the absolute path the schema was loaded from.
func (s *Schema) Path() string { return s.path }

// Validate checks m as a JSON object. Null entries are presented as JSON
// null; integers keep full precision.
func (s *Schema) Validate(m *conf.Map) *Result {
	result := &Result{Valid: true}

	data, err := json.Marshal(m)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("encode entries for validation: %w", err))
		return result
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("decode entries for validation: %w", err))
		return result
	}

	if err := s.schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

// ValidateFile compiles the schema at schemaPath and validates m against it.
func ValidateFile(schemaPath string, m *conf.Map) (*Result, error) {
	s, err := Compile(schemaPath)
	if err != nil {
		return nil, err
	}
	return s.Validate(m), nil
}

func appendSchemaErrors(result *Result, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

// collectSchemaErrors flattens the cause tree into its leaves.
func collectSchemaErrors(result *Result, err *jsonschema.ValidationError) {
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
