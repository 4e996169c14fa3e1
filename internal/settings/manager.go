package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kvconf/internal/conf"
	"github.com/nibzard/kvconf/internal/logging"
)

// Manager owns one configuration file and its in-memory entries.
type Manager struct {
	path     string
	opts     conf.Options
	data     *conf.Map
	dirty    bool
	prompter Prompter
	logger   *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithAssignmentOperator sets the key/value separator used to read and
// write the file.
func WithAssignmentOperator(op string) Option {
	return func(m *Manager) {
		m.opts.AssignmentOperator = op
	}
}

// WithCommentDelimiter sets the comment delimiter used when reading.
func WithCommentDelimiter(delim string) Option {
	return func(m *Manager) {
		m.opts.CommentDelimiter = delim
	}
}

// WithInlineComments enables stripping of trailing comments when reading.
func WithInlineComments(enabled bool) Option {
	return func(m *Manager) {
		m.opts.InlineComments = enabled
	}
}

// WithPrompter sets the Prompter used by interactive LoadVar calls.
func WithPrompter(p Prompter) Option {
	return func(m *Manager) {
		m.prompter = p
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New loads path into a new Manager. A missing file starts empty and is
// created by the first LoadVar.
func New(path string, opts ...Option) (*Manager, error) {
	if path == "" {
		return nil, fmt.Errorf("settings path is empty")
	}
	m := &Manager{
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.opts.AssignmentOperator == "" {
		m.opts.AssignmentOperator = conf.DefaultAssignmentOperator
	}

	res, err := conf.ReadFile(path, m.opts)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if res.Existed {
		m.logger.Debug("Using existing settings", "path", path, "entries", res.Entries.Len())
	}
	m.data = res.Entries
	return m, nil
}

// Path returns the backing file path.
func (m *Manager) Path() string { return m.path }

// Dirty reports whether there are changes that have not been saved.
func (m *Manager) Dirty() bool { return m.dirty }

// LoadVar makes sure name has a value. When the key is absent the value is
// the default, or the user's answer when interactive is set and the answer
// is not blank. A null default becomes the empty string. Keys already
// present are left untouched. The file is written when anything changed or
// when it does not exist yet.
func (m *Manager) LoadVar(ctx context.Context, name string, def conf.Value, description string, interactive bool) error {
	if name == "" {
		return fmt.Errorf("variable name is empty")
	}
	if !m.data.Has(name) {
		if def.IsNull() {
			m.logger.Warn("No default value", "name", name)
			def = conf.String("")
		}
		v, err := m.resolve(ctx, name, def, description, interactive)
		if err != nil {
			return err
		}
		m.data.Set(name, v)
		m.logger.Info("Using", "name", name, "value", v.String())
		m.dirty = true
	}
	if !isRegularFile(m.path) {
		m.logger.Info("Creating", "path", m.path)
		m.dirty = true
	}
	return m.flush()
}

// PrepareVar is LoadVar with interactive input enabled.
func (m *Manager) PrepareVar(ctx context.Context, name string, def conf.Value, description string) error {
	return m.LoadVar(ctx, name, def, description, true)
}

func (m *Manager) resolve(ctx context.Context, name string, def conf.Value, description string, interactive bool) (conf.Value, error) {
	if !interactive {
		if s, ok := def.AsString(); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return conf.String(trimmed), nil
			}
		}
		return def, nil
	}
	if m.prompter == nil {
		return conf.Value{}, ErrNoPrompter
	}
	answer, err := m.prompter.Prompt(ctx, Question{
		Name:        name,
		Description: description,
		Default:     def.String(),
	})
	if err != nil {
		return conf.Value{}, fmt.Errorf("prompt for %s: %w", name, err)
	}
	if answer = strings.TrimSpace(answer); answer != "" {
		return conf.Coerce(answer), nil
	}
	return def, nil
}

// SetVar stores v under name and saves when the value changed. Setting a
// name that was never loaded is allowed but logged.
func (m *Manager) SetVar(name string, v conf.Value) error {
	old, ok := m.data.Get(name)
	if !ok {
		m.logger.Warn("Setting a variable that has no default; call LoadVar first", "name", name)
	}
	if !ok || !old.Equal(v) {
		m.data.Set(name, v)
		m.dirty = true
	}
	return m.flush()
}

// RemoveVar deletes name and saves. A missing name is not an error.
func (m *Manager) RemoveVar(name string) error {
	if m.data.Delete(name) {
		m.dirty = true
	}
	return m.flush()
}

// GetVar returns the value stored under name.
func (m *Manager) GetVar(name string) (conf.Value, bool) {
	return m.data.Get(name)
}

// Contains reports whether name has a value.
func (m *Manager) Contains(name string) bool {
	return m.data.Has(name)
}

// Keys returns the variable names in file order.
func (m *Manager) Keys() []string {
	return m.data.Keys()
}

// Entries returns a copy of all variables.
func (m *Manager) Entries() *conf.Map {
	return m.data.Clone()
}

// Save writes every non-null variable to the backing file.
func (m *Manager) Save() error {
	m.dirty = true
	return m.flush()
}

func (m *Manager) flush() error {
	if !m.dirty {
		return nil
	}
	err := conf.WriteFile(m.path, m.data, conf.WriteOptions{
		AssignmentOperator: m.opts.AssignmentOperator,
	})
	if err == nil {
		m.dirty = false
		return nil
	}
	if errors.Is(err, fs.ErrPermission) {
		// Reported but not returned; the entries stay dirty in memory.
		m.logger.Error("Could not finish saving settings", "path", m.path, "err", err, "stack", string(debug.Stack()))
		return nil
	}
	return err
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
