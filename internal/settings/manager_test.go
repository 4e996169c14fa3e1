package settings

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/kvconf/internal/conf"
	"github.com/nibzard/kvconf/internal/logging"
)

type stubPrompter struct {
	answers   []string
	err       error
	questions []Question
}

func (s *stubPrompter) Prompt(ctx context.Context, q Question) (string, error) {
	s.questions = append(s.questions, q)
	if s.err != nil {
		return "", s.err
	}
	if len(s.answers) == 0 {
		return "", nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestNewMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	m, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(m.Keys()) != 0 {
		t.Errorf("Keys: got %v, want none", m.Keys())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("New should not create the file")
	}
	if _, err := New(""); err == nil {
		t.Error("New(\"\"): expected error")
	}
}

func TestLoadVarCreatesFileWithDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	m, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := m.LoadVar(ctx, "host", conf.String("  localhost "), "server host", false); err != nil {
		t.Fatalf("LoadVar: %v", err)
	}
	if err := m.LoadVar(ctx, "port", conf.Int(8080), "server port", false); err != nil {
		t.Fatalf("LoadVar: %v", err)
	}

	if got := readFile(t, path); got != "host=localhost\nport=8080\n" {
		t.Errorf("file: got %q", got)
	}
	if v, _ := m.GetVar("port"); v != conf.Int(8080) {
		t.Errorf("port: got %v", v)
	}
	if m.Dirty() {
		t.Error("Dirty: expected false after save")
	}
}

func TestLoadVarKeepsExistingValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	original := "# hand written\nport = 9000\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}
	p := &stubPrompter{answers: []string{"1234"}}
	m, err := New(path, WithPrompter(p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := m.LoadVar(context.Background(), "port", conf.Int(8080), "port", true); err != nil {
		t.Fatalf("LoadVar: %v", err)
	}
	if len(p.questions) != 0 {
		t.Errorf("prompter called for existing key: %v", p.questions)
	}
	if v, _ := m.GetVar("port"); v != conf.Int(9000) {
		t.Errorf("port: got %v, want 9000", v)
	}
	// Nothing changed, so the file keeps its comment.
	if got := readFile(t, path); got != original {
		t.Errorf("file rewritten: got %q", got)
	}
}

func TestLoadVarInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	p := &stubPrompter{answers: []string{" 42 ", "   "}}
	m, err := New(path, WithPrompter(p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := m.PrepareVar(ctx, "workers", conf.Int(4), "worker count"); err != nil {
		t.Fatalf("PrepareVar: %v", err)
	}
	if err := m.PrepareVar(ctx, "name", conf.String("demo"), ""); err != nil {
		t.Fatalf("PrepareVar: %v", err)
	}

	if v, _ := m.GetVar("workers"); v != conf.Int(42) {
		t.Errorf("workers: got %v, want 42", v)
	}
	if v, _ := m.GetVar("name"); v != conf.String("demo") {
		t.Errorf("name: got %v, want default demo", v)
	}
	if len(p.questions) != 2 {
		t.Fatalf("questions: got %d, want 2", len(p.questions))
	}
	q := p.questions[0]
	if q.Name != "workers" || q.Default != "4" {
		t.Errorf("question: got %+v", q)
	}
	want := "Please enter worker count (workers) [blank for 4]: "
	if q.Text() != want {
		t.Errorf("Text: got %q, want %q", q.Text(), want)
	}
}

func TestLoadVarNullDefault(t *testing.T) {
	var logBuf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.conf")
	m, err := New(path, WithLogger(logging.NewFromConfig("info", "text", false, false, &logBuf)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.LoadVar(context.Background(), "token", conf.Null(), "token", false); err != nil {
		t.Fatalf("LoadVar: %v", err)
	}
	if v, ok := m.GetVar("token"); !ok || v != conf.String("") {
		t.Errorf("token: got %v %v, want empty string", v, ok)
	}
	if !strings.Contains(logBuf.String(), "No default value") {
		t.Errorf("expected warning, got %q", logBuf.String())
	}
}

func TestLoadVarErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	m, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = m.LoadVar(context.Background(), "x", conf.String("d"), "x", true)
	if !errors.Is(err, ErrNoPrompter) {
		t.Errorf("no prompter: got %v, want ErrNoPrompter", err)
	}
	if m.Contains("x") {
		t.Error("failed LoadVar should not store a value")
	}

	boom := errors.New("boom")
	m, _ = New(path, WithPrompter(&stubPrompter{err: boom}))
	if err := m.LoadVar(context.Background(), "x", conf.String("d"), "x", true); !errors.Is(err, boom) {
		t.Errorf("prompt error: got %v, want boom", err)
	}

	if err := m.LoadVar(context.Background(), "", conf.String("d"), "", false); err == nil {
		t.Error("empty name: expected error")
	}
}

func TestSetVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	original := "# keep me\nmode = fast\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}
	var logBuf bytes.Buffer
	m, err := New(path, WithLogger(logging.NewFromConfig("info", "text", false, false, &logBuf)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := m.SetVar("mode", conf.String("fast")); err != nil {
		t.Fatalf("SetVar same: %v", err)
	}
	if got := readFile(t, path); got != original {
		t.Errorf("unchanged SetVar rewrote file: %q", got)
	}

	if err := m.SetVar("mode", conf.String("slow")); err != nil {
		t.Fatalf("SetVar: %v", err)
	}
	if got := readFile(t, path); got != "mode=slow\n" {
		t.Errorf("file: got %q", got)
	}

	if err := m.SetVar("fresh", conf.Bool(true)); err != nil {
		t.Fatalf("SetVar new: %v", err)
	}
	if got := readFile(t, path); got != "mode=slow\nfresh=true\n" {
		t.Errorf("file: got %q", got)
	}
	if !strings.Contains(logBuf.String(), "no default") {
		t.Errorf("expected warning for unloaded key, got %q", logBuf.String())
	}

	if err := m.SetVar("mode", conf.Null()); err != nil {
		t.Fatalf("SetVar null: %v", err)
	}
	if got := readFile(t, path); got != "fresh=true\n" {
		t.Errorf("null entries should not be saved: %q", got)
	}
	if !m.Contains("mode") {
		t.Error("null entry should stay in memory")
	}
}

func TestRemoveVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	if err := os.WriteFile(path, []byte("a=1\nb=2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.RemoveVar("a"); err != nil {
		t.Fatalf("RemoveVar: %v", err)
	}
	if got := readFile(t, path); got != "b=2\n" {
		t.Errorf("file: got %q", got)
	}
	if err := m.RemoveVar("missing"); err != nil {
		t.Errorf("RemoveVar(missing): %v", err)
	}
	if got := m.Keys(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Keys: got %v", got)
	}
}

func TestCustomOperator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := New(path, WithAssignmentOperator(":"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.SetVar("b", conf.Int(2)); err != nil {
		t.Fatalf("SetVar: %v", err)
	}
	if got := readFile(t, path); got != "a:1\nb:2\n" {
		t.Errorf("file: got %q", got)
	}
}

func TestSavePermissionDeniedIsReported(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	var logBuf bytes.Buffer
	m, err := New(filepath.Join(dir, "app.conf"), WithLogger(logging.NewFromConfig("info", "text", false, false, &logBuf)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.LoadVar(context.Background(), "a", conf.Int(1), "a", false); err != nil {
		t.Fatalf("LoadVar should swallow permission errors, got %v", err)
	}
	if !m.Dirty() {
		t.Error("Dirty: expected true after failed save")
	}
	if !strings.Contains(logBuf.String(), "Could not finish saving") {
		t.Errorf("expected diagnostic, got %q", logBuf.String())
	}
}
