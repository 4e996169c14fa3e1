// Package cmd implements the CLI command structure for kvconf.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kvconf/internal/conf"
	"github.com/nibzard/kvconf/internal/config"
	"github.com/nibzard/kvconf/internal/logging"
	"github.com/nibzard/kvconf/internal/settings"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errUsage marks argument errors; the usage text has already been printed.
var errUsage = errors.New("usage error")

// app carries what every subcommand needs.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger
}

// Run executes the kvconf CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("kvconf", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return versionCommand(out)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, errOut)
		return fmt.Errorf("missing command")
	}
	subcommand, remaining := remaining[0], remaining[1:]

	a := &app{
		cfg:     cws.Config,
		sources: cws,
		in:      in,
		out:     out,
		errOut:  errOut,
	}
	closeLog, err := a.setupLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	err = a.dispatch(ctx, fs, subcommand, remaining)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// dispatch runs one subcommand with its arguments.
func (a *app) dispatch(ctx context.Context, fs *flag.FlagSet, subcommand string, args []string) error {
	switch subcommand {
	case "get":
		return a.getCommand(args)
	case "set":
		return a.setCommand(args)
	case "unset":
		return a.unsetCommand(args)
	case "dump":
		return a.dumpCommand(args)
	case "diff":
		return a.diffCommand(args)
	case "init":
		return a.initCommand(ctx, args)
	case "validate":
		return a.validateCommand(args)
	case "find":
		return a.findCommand(args)
	case "ident":
		return a.identCommand(args)
	case "chunk":
		return a.chunkCommand(args)
	case "split":
		return a.splitCommand(args)
	case "dups":
		return a.dupsCommand(args)
	case "config":
		return a.configCommand(args)
	case "version":
		return versionCommand(a.out)
	case "help":
		printUsage(fs, a.out)
		return nil
	default:
		fmt.Fprintf(a.errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, a.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// setupLogger builds the logger from the loaded config. Logs go to the
// configured file, or stderr when none is set.
func (a *app) setupLogger() (func(), error) {
	w := a.errOut
	closeFn := func() {}
	if a.cfg.LogFile != "" {
		f, err := logging.OpenFile(a.cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	a.logger = logging.NewFromConfig(a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller, w)
	return closeFn, nil
}

// readOptions returns the file format options from the config.
func (a *app) readOptions() conf.Options {
	return conf.Options{
		AssignmentOperator: a.cfg.AssignmentOperator,
		CommentDelimiter:   a.cfg.CommentDelimiter,
		InlineComments:     a.cfg.InlineComments,
	}
}

// openSettings opens path with a settings manager configured from the
// loaded config.
func (a *app) openSettings(path string, extra ...settings.Option) (*settings.Manager, error) {
	opts := []settings.Option{
		settings.WithAssignmentOperator(a.cfg.AssignmentOperator),
		settings.WithCommentDelimiter(a.cfg.CommentDelimiter),
		settings.WithInlineComments(a.cfg.InlineComments),
		settings.WithLogger(a.logger),
	}
	opts = append(opts, extra...)
	m, err := settings.New(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return m, nil
}

// newSubcommand returns a flag set for "kvconf <name>" that reports parse
// errors on the app's error output.
func (a *app) newSubcommand(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet("kvconf "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "Usage: kvconf %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// positional checks the positional argument count after flag parsing.
func positional(fs *flag.FlagSet, lo, hi int) ([]string, error) {
	args := fs.Args()
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		fs.Usage()
		return nil, fmt.Errorf("%s: %w", fs.Name(), errUsage)
	}
	return args, nil
}

// configCommand shows the effective settings and where each came from.
func (a *app) configCommand(args []string) error {
	fs := a.newSubcommand("config", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := positional(fs, 0, 0); err != nil {
		return err
	}

	values := map[string]string{
		"assignment_operator": a.cfg.AssignmentOperator,
		"comment_delimiter":   a.cfg.CommentDelimiter,
		"inline_comments":     fmt.Sprint(a.cfg.InlineComments),
		"save_nulls":          fmt.Sprint(a.cfg.SaveNulls),
		"interactive":         fmt.Sprint(a.cfg.Interactive),
		"log_level":           a.cfg.LogLevel,
		"log_format":          a.cfg.LogFormat,
		"log_timestamps":      fmt.Sprint(a.cfg.LogTimestamps),
		"log_caller":          fmt.Sprint(a.cfg.LogCaller),
		"log_file":            a.cfg.LogFile,
	}
	width := 0
	for _, field := range config.Fields() {
		width = max(width, len(field))
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(a.out, "%-*s = %-12q (%s)\n", width, field, values[field], a.sources.Sources[field])
	}
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(a.out, "\nNo config files found.")
		return nil
	}
	fmt.Fprintln(a.out, "\nConfig files:")
	for _, f := range a.sources.Files {
		fmt.Fprintf(a.out, "  %s\n", f)
	}
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "kvconf version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	lines := []string{
		"kvconf - Read, edit and inspect key/value configuration files",
		"",
		"Usage:",
		"  kvconf [global options] <command> [options] [args]",
		"",
		"File commands:",
		"  get [-type|-raw] <file> <key>         Print one value",
		"  set [-string] <file> <key> <value>    Store a value",
		"  unset <file> <key>                    Remove a value",
		"  dump [-format lines|json|toml] <file>...  Print all entries; later files override earlier ones",
		"  diff <newer> <older>                  Report the first key newer adds or changes",
		"  init [-interactive] <file> name=default[:description]...",
		"                                        Make sure each name has a value",
		"  validate -schema <schema.json> <file> Validate entries against a JSON Schema",
		"",
		"Line commands:",
		"  find [options] <line> <needle>        Quote and comment aware search",
		"  ident [-start n] <line> <name>        Find a whole identifier",
		"  chunk [-backward] <line> <start>      Length of a balanced span",
		"  split [-delim s] <line>               Split outside of quotes",
		"  dups [options] [file]                 Find the first duplicate line (stdin when no file)",
		"",
		"Other commands:",
		"  config                                Show effective settings and their sources",
		"  version                               Show version information",
		"  help                                  Show this help message",
		"",
		"Global Options:",
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
	fs.SetOutput(w)
	fs.PrintDefaults()
}
