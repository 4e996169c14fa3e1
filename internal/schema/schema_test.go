package schema

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nibzard/kvconf/internal/conf"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["port"],
  "properties": {
    "port": {"type": "integer", "minimum": 1, "maximum": 65535},
    "host": {"type": "string", "minLength": 1},
    "debug": {"type": "boolean"},
    "token": {"type": ["string", "null"]}
  },
  "additionalProperties": false
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.schema.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func entries(pairs ...any) *conf.Map {
	m := conf.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(conf.Value))
	}
	return m
}

func TestValidate(t *testing.T) {
	s, err := Compile(writeSchema(t, testSchema))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	tests := []struct {
		name      string
		m         *conf.Map
		valid     bool
		wantPaths []string
	}{
		{
			name:  "valid",
			m:     entries("port", conf.Int(8080), "host", conf.String("db"), "debug", conf.Bool(false), "token", conf.Null()),
			valid: true,
		},
		{
			name:      "wrong type",
			m:         entries("port", conf.String("http")),
			wantPaths: []string{"port"},
		},
		{
			name:      "float is not integer",
			m:         entries("port", conf.Float(80.5)),
			wantPaths: []string{"port"},
		},
		{
			name:      "out of range",
			m:         entries("port", conf.Int(70000)),
			wantPaths: []string{"port"},
		},
		{
			name:      "missing required",
			m:         entries("host", conf.String("db")),
			wantPaths: []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Validate(tt.m)
			if res.Valid != tt.valid {
				t.Fatalf("Valid: got %v, want %v (errors %v)", res.Valid, tt.valid, res.Errors)
			}
			if tt.valid {
				if len(res.Errors) != 0 {
					t.Errorf("unexpected errors: %v", res.Errors)
				}
				return
			}
			for _, want := range tt.wantPaths {
				found := false
				for _, err := range res.Errors {
					var ve *ValidationError
					if errors.As(err, &ve) && ve.Path == want {
						found = true
					}
				}
				if !found {
					t.Errorf("no error at path %q in %v", want, res.Errors)
				}
			}
		})
	}
}

func TestValidateUnencodableFloat(t *testing.T) {
	s, err := Compile(writeSchema(t, `{"type": "object"}`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res := s.Validate(entries("ratio", conf.Float(math.Inf(1))))
	if res.Valid || len(res.Errors) != 1 {
		t.Errorf("got %+v, want one encoding error", res)
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Errorf("missing schema: got %v, want ErrSchemaNotFound", err)
	}

	if _, err := Compile(writeSchema(t, `{"type": 12}`)); err == nil {
		t.Error("invalid schema: expected error")
	}

	if _, err := ValidateFile(writeSchema(t, `not json`), conf.NewMap()); err == nil {
		t.Error("malformed schema: expected error")
	}
}
