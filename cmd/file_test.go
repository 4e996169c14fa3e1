package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/kvconf/internal/conf"
)

func TestGetCommand(t *testing.T) {
	work := isolate(t)
	path := writeFile(t, work, "app.conf", "port = 08\nratio = 0.5\nname = demo # note\n")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "coerced", args: []string{"get", path, "port"}, want: "8\n"},
		{name: "raw", args: []string{"get", "-raw", path, "port"}, want: "08\n"},
		{name: "type", args: []string{"get", "-type", path, "ratio"}, want: "float\n"},
		{name: "comment kept without inline comments", args: []string{"get", path, "name"}, want: "demo # note\n"},
		{name: "inline comments", args: []string{"-inline-comments", "get", path, "name"}, want: "demo\n"},
		{name: "missing key", args: []string{"get", path, "nope"}, wantErr: true},
		{name: "raw missing key", args: []string{"get", "-raw", path, "nope"}, wantErr: true},
		{name: "raw missing file", args: []string{"get", "-raw", filepath.Join(work, "none.conf"), "k"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, "", tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestSetAndUnsetCommands(t *testing.T) {
	work := isolate(t)
	path := filepath.Join(work, "app.conf")

	steps := [][]string{
		{"set", path, "port", " 8080 "},
		{"set", "-string", path, "version", "1.0"},
		{"set", path, "debug", "TRUE"},
	}
	for _, args := range steps {
		if _, _, err := runCLI(t, "", args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	if got := readFile(t, path); got != "port=8080\nversion=1.0\ndebug=true\n" {
		t.Errorf("after set: got %q", got)
	}

	res, err := conf.ReadFile(path, conf.Options{})
	if err != nil {
		t.Fatal(err)
	}
	// "1.0" was stored as text but reads back as a float.
	if v, _ := res.Entries.Get("version"); v != conf.Float(1) {
		t.Errorf("version: got %v (%s)", v, v.Kind())
	}

	if _, _, err := runCLI(t, "", "unset", path, "version"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	_, errOut, err := runCLI(t, "", "unset", path, "missing")
	if err != nil {
		t.Fatalf("unset missing: %v", err)
	}
	if !strings.Contains(errOut, "Key not present") {
		t.Errorf("expected warning, got %q", errOut)
	}
	if got := readFile(t, path); got != "port=8080\ndebug=true\n" {
		t.Errorf("after unset: got %q", got)
	}
}

func TestSetWithCustomOperator(t *testing.T) {
	work := isolate(t)
	path := writeFile(t, work, "app.conf", "a: 1\n")
	if _, _, err := runCLI(t, "", "-operator", ":", "set", path, "b", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := readFile(t, path); got != "a:1\nb:2\n" {
		t.Errorf("got %q", got)
	}
}

func TestDumpCommand(t *testing.T) {
	work := isolate(t)
	base := writeFile(t, work, "base.conf", "a = 1\nb = x\nc = null\n")
	local := writeFile(t, work, "local.conf", "b = y\na = 1\n")
	missing := filepath.Join(work, "missing.conf")

	t.Run("lines", func(t *testing.T) {
		out, _, err := runCLI(t, "", "dump", base, local, missing)
		if err != nil {
			t.Fatalf("dump: %v", err)
		}
		want := "a=1\nb=y\n" +
			"# " + base + ": 3 entries modified\n" +
			"# " + local + ": 1 entry modified\n" +
			"# " + missing + ": missing\n"
		if out != want {
			t.Errorf("got:\n%s\nwant:\n%s", out, want)
		}
	})

	t.Run("lines with nulls", func(t *testing.T) {
		out, _, err := runCLI(t, "", "-save-nulls", "dump", base)
		if err != nil {
			t.Fatalf("dump: %v", err)
		}
		if !strings.HasPrefix(out, "a=1\nb=x\nc=null\n") {
			t.Errorf("got %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := runCLI(t, "", "dump", "-format", "json", base)
		if err != nil {
			t.Fatalf("dump: %v", err)
		}
		want := "{\n  \"a\": 1,\n  \"b\": \"x\",\n  \"c\": null\n}\n"
		if out != want {
			t.Errorf("got %q, want %q", out, want)
		}
	})

	t.Run("toml", func(t *testing.T) {
		out, _, err := runCLI(t, "", "dump", "-format", "toml", base)
		if err != nil {
			t.Fatalf("dump: %v", err)
		}
		if !strings.Contains(out, "a = 1") || !strings.Contains(out, `b = "x"`) || strings.Contains(out, "c") {
			t.Errorf("got %q", out)
		}
	})

	t.Run("bad format", func(t *testing.T) {
		if _, _, err := runCLI(t, "", "dump", "-format", "yaml", base); err == nil {
			t.Error("expected error")
		}
	})
}

func TestDiffCommand(t *testing.T) {
	work := isolate(t)
	older := writeFile(t, work, "older.conf", "a=1\nb=2\n")
	newer := writeFile(t, work, "newer.conf", "a=1\nb=3\n")
	same := writeFile(t, work, "same.conf", "b=2\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"changed value", []string{"diff", newer, older}, "changed: b\n"},
		{"subset is unchanged", []string{"diff", same, older}, "unchanged\n"},
		{"older missing", []string{"diff", newer, filepath.Join(work, "none.conf")}, "changed: " + newer + " is new\n"},
		{"newer missing", []string{"diff", filepath.Join(work, "none.conf"), older}, "unchanged\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, "", tt.args...)
			if err != nil {
				t.Fatalf("diff: %v", err)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestParseInitVar(t *testing.T) {
	tests := []struct {
		arg     string
		name    string
		def     conf.Value
		desc    string
		wantErr bool
	}{
		{arg: "port=8080", name: "port", def: conf.Int(8080)},
		{arg: "port = 8080 : server port", name: "port", def: conf.Int(8080), desc: "server port"},
		{arg: "url='http://x':base url", name: "url", def: conf.String("http://x"), desc: "base url"},
		{arg: "ratio=0.5", name: "ratio", def: conf.Float(0.5)},
		{arg: "version=\"1.0\"", name: "version", def: conf.String("1.0")},
		{arg: "token=", name: "token", def: conf.Null()},
		{arg: "db.host=localhost", name: "db.host", def: conf.String("localhost")},
		{arg: "noequals", wantErr: true},
		{arg: "=1", wantErr: true},
		{arg: "bad name=1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			iv, err := parseInitVar(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", iv)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if iv.name != tt.name || iv.def != tt.def || iv.description != tt.desc {
				t.Errorf("got %+v, want name=%q def=%v desc=%q", iv, tt.name, tt.def, tt.desc)
			}
		})
	}
}

func TestInitCommand(t *testing.T) {
	work := isolate(t)

	t.Run("defaults", func(t *testing.T) {
		path := filepath.Join(work, "defaults.conf")
		_, errOut, err := runCLI(t, "", "init", path, "port=8080:server port", "token=")
		if err != nil {
			t.Fatalf("init: %v", err)
		}
		if got := readFile(t, path); got != "port=8080\ntoken=\n" {
			t.Errorf("file: got %q", got)
		}
		if !strings.Contains(errOut, "No default value") {
			t.Errorf("expected null default warning, got %q", errOut)
		}
	})

	t.Run("interactive", func(t *testing.T) {
		path := writeFile(t, work, "interactive.conf", "host = db\n")
		out, _, err := runCLI(t, "7\n\n", "init", "-interactive", path,
			"host=localhost", "workers=4:worker count", "name=demo")
		if err != nil {
			t.Fatalf("init: %v", err)
		}
		if got := readFile(t, path); got != "host=db\nworkers=7\nname=demo\n" {
			t.Errorf("file: got %q", got)
		}
		if strings.Contains(out, "(host)") {
			t.Errorf("existing key should not be asked for:\n%s", out)
		}
		if !strings.Contains(out, "Please enter worker count (workers) [blank for 4]: ") {
			t.Errorf("prompt missing:\n%s", out)
		}
	})

	t.Run("invalid variable", func(t *testing.T) {
		if _, _, err := runCLI(t, "", "init", filepath.Join(work, "x.conf"), "oops"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidateCommand(t *testing.T) {
	work := isolate(t)
	schemaPath := writeFile(t, work, "app.schema.json", `{
  "type": "object",
  "required": ["port"],
  "properties": {"port": {"type": "integer"}}
}`)
	good := writeFile(t, work, "good.conf", "port = 80\n")
	bad := writeFile(t, work, "bad.conf", "port = http\n")

	out, _, err := runCLI(t, "", "validate", "-schema", schemaPath, good)
	if err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if out != good+": valid\n" {
		t.Errorf("got %q", out)
	}

	out, _, err = runCLI(t, "", "validate", "-schema", schemaPath, bad)
	if err == nil || !strings.Contains(err.Error(), "1 validation error") {
		t.Errorf("validate bad: got %v", err)
	}
	if !strings.Contains(out, "port:") {
		t.Errorf("expected error path in output, got %q", out)
	}

	if _, _, err := runCLI(t, "", "validate", good); err == nil {
		t.Error("expected error without -schema")
	}
	if _, _, err := runCLI(t, "", "validate", "-schema", filepath.Join(work, "none.json"), good); err == nil {
		t.Error("expected error for missing schema")
	}
}
