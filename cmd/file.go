package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/kvconf/internal/conf"
	"github.com/nibzard/kvconf/internal/scan"
	"github.com/nibzard/kvconf/internal/schema"
	"github.com/nibzard/kvconf/internal/settings"
	"github.com/nibzard/kvconf/internal/ui"
	"github.com/nibzard/kvconf/internal/utils"
)

// getCommand prints one value.
func (a *app) getCommand(args []string) error {
	fs := a.newSubcommand("get", "[-type|-raw] <file> <key>")
	showType := fs.Bool("type", false, "Print the value's type instead of the value")
	raw := fs.Bool("raw", false, "Print the first assignment's text without coercion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	path, key := pos[0], pos[1]

	if *raw {
		text, found, err := conf.InitialValue(path, key, a.cfg.AssignmentOperator)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("key %q not found in %s", key, path)
		}
		fmt.Fprintln(a.out, text)
		return nil
	}

	res, err := conf.ReadFile(path, a.readOptions())
	if err != nil {
		return err
	}
	v, ok := res.Entries.Get(key)
	if !ok {
		return fmt.Errorf("key %q not found in %s", key, path)
	}
	if *showType {
		fmt.Fprintln(a.out, v.Kind())
		return nil
	}
	fmt.Fprintln(a.out, v.String())
	return nil
}

// setCommand stores a value through the settings manager.
func (a *app) setCommand(args []string) error {
	fs := a.newSubcommand("set", "[-string] <file> <key> <value>")
	asString := fs.Bool("string", false, "Store the value as text without coercion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 3, 3)
	if err != nil {
		return err
	}
	path, key, text := pos[0], strings.TrimSpace(pos[1]), pos[2]
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}

	v := conf.String(text)
	if !*asString {
		v = conf.Coerce(strings.TrimSpace(text))
	}

	m, err := a.openSettings(path)
	if err != nil {
		return err
	}
	if err := m.SetVar(key, v); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// unsetCommand removes a value through the settings manager.
func (a *app) unsetCommand(args []string) error {
	fs := a.newSubcommand("unset", "<file> <key>")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	path, key := pos[0], pos[1]

	m, err := a.openSettings(path)
	if err != nil {
		return err
	}
	if !m.Contains(key) {
		a.logger.Warn("Key not present", "key", key, "path", path)
	}
	if err := m.RemoveVar(key); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// dumpCommand prints the merged entries of one or more files.
func (a *app) dumpCommand(args []string) error {
	fs := a.newSubcommand("dump", "[-format lines|json|toml] <file>...")
	format := fs.String("format", "lines", "Output format (lines, json, toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths, err := positional(fs, 1, -1)
	if err != nil {
		return err
	}
	switch *format {
	case "lines", "json", "toml":
	default:
		return fmt.Errorf("unknown format %q (want lines, json or toml)", *format)
	}

	m := conf.NewMap()
	var footer []string
	for _, path := range paths {
		res, err := conf.MergeFile(m, path, a.readOptions())
		if err != nil {
			return err
		}
		if !res.Existed {
			a.logger.Warn("File not found", "path", path)
			footer = append(footer, fmt.Sprintf("%s %s: missing", a.cfg.CommentDelimiter, path))
			continue
		}
		a.logger.Debug("Read", "path", path, "modified", res.Modified)
		footer = append(footer, fmt.Sprintf("%s %s: %s modified", a.cfg.CommentDelimiter, path,
			utils.CountNoun(res.Modified, "entry", "entries")))
	}

	switch *format {
	case "json":
		return conf.EncodeJSON(a.out, m)
	case "toml":
		return conf.EncodeTOML(a.out, m)
	}
	if err := conf.Encode(a.out, m, conf.WriteOptions{
		AssignmentOperator: a.cfg.AssignmentOperator,
		SaveNulls:          a.cfg.SaveNulls,
	}); err != nil {
		return err
	}
	for _, line := range footer {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// diffCommand reports the first key that newer adds or changes relative
// to older.
func (a *app) diffCommand(args []string) error {
	fs := a.newSubcommand("diff", "<newer> <older>")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}

	var maps [2]*conf.Map
	for i, path := range pos {
		res, err := conf.ReadFile(path, a.readOptions())
		if err != nil {
			return err
		}
		if res.Existed {
			maps[i] = res.Entries
		}
	}
	key, changed := conf.Changed(maps[0], maps[1])
	switch {
	case !changed:
		fmt.Fprintln(a.out, "unchanged")
	case key == "":
		fmt.Fprintf(a.out, "changed: %s is new\n", pos[0])
	default:
		fmt.Fprintf(a.out, "changed: %s\n", key)
	}
	return nil
}

// initVar is one name=default[:description] argument of "init".
type initVar struct {
	name        string
	def         conf.Value
	description string
}

// parseInitVar parses name=default[:description]. The description starts
// at the first colon outside quotes; a quoted default is kept as text.
func parseInitVar(arg string) (initVar, error) {
	name, rest, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || !scan.IsIdentifier(name, true) {
		return initVar{}, fmt.Errorf("invalid variable %q: want name=default[:description]", arg)
	}
	iv := initVar{name: name}
	if i := scan.Find(rest, ":", scan.FindOptions{End: scan.ToEnd, IgnoreComments: true}); i >= 0 {
		iv.description = strings.TrimSpace(rest[i+1:])
		rest = rest[:i]
	}

	text := strings.TrimSpace(rest)
	switch {
	case text == "":
		iv.def = conf.Null()
	case len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0]:
		iv.def = conf.String(text[1 : len(text)-1])
	default:
		iv.def = conf.Coerce(text)
	}
	return iv, nil
}

// initCommand makes sure every named variable has a value, prompting for
// missing ones when interactive.
func (a *app) initCommand(ctx context.Context, args []string) error {
	fs := a.newSubcommand("init", "[-interactive] <file> name=default[:description]...")
	interactive := fs.Bool("interactive", a.cfg.Interactive, "Prompt for values that are not set yet")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, -1)
	if err != nil {
		return err
	}
	path := pos[0]

	vars := make([]initVar, 0, len(pos)-1)
	for _, arg := range pos[1:] {
		iv, err := parseInitVar(arg)
		if err != nil {
			return err
		}
		vars = append(vars, iv)
	}

	var extra []settings.Option
	if *interactive {
		extra = append(extra, settings.WithPrompter(ui.NewTerminalPrompter(a.in, a.out)))
	}
	m, err := a.openSettings(path, extra...)
	if err != nil {
		return err
	}
	for _, iv := range vars {
		if err := m.LoadVar(ctx, iv.name, iv.def, iv.description, *interactive); err != nil {
			if errors.Is(err, ui.ErrAborted) {
				return fmt.Errorf("init canceled at %s: %w", iv.name, err)
			}
			return fmt.Errorf("loading %s: %w", iv.name, err)
		}
	}
	return nil
}

// validateCommand checks a file against a JSON Schema.
func (a *app) validateCommand(args []string) error {
	fs := a.newSubcommand("validate", "-schema <schema.json> <file>")
	schemaPath := fs.String("schema", "", "Path to the JSON Schema file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 1, 1)
	if err != nil {
		return err
	}
	if *schemaPath == "" {
		fs.Usage()
		return fmt.Errorf("validate: -schema is required: %w", errUsage)
	}

	res, err := conf.ReadFile(pos[0], a.readOptions())
	if err != nil {
		return err
	}
	if !res.Existed {
		a.logger.Warn("File not found, validating no entries", "path", pos[0])
	}
	result, err := schema.ValidateFile(*schemaPath, res.Entries)
	if err != nil {
		return err
	}
	if result.Valid {
		fmt.Fprintf(a.out, "%s: valid\n", pos[0])
		return nil
	}
	for _, verr := range result.Errors {
		fmt.Fprintf(a.out, "  %v\n", verr)
	}
	return fmt.Errorf("%s: %s", pos[0], utils.CountNoun(len(result.Errors), "validation error", "validation errors"))
}
