package config

import "flag"

// flagFields maps flag names to source field names.
var flagFields = map[string]string{
	"operator":        "assignment_operator",
	"comment":         "comment_delimiter",
	"inline-comments": "inline_comments",
	"save-nulls":      "save_nulls",
	"interactive":     "interactive",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"log-timestamps":  "log_timestamps",
	"log-caller":      "log_caller",
	"log-file":        "log_file",
}

// parseFlags defines the global flags on fs, parses args and records a flag
// source for every flag given explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("kvconf", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.AssignmentOperator, "operator", cfg.AssignmentOperator, "Key/value assignment operator")
	fs.StringVar(&cfg.CommentDelimiter, "comment", cfg.CommentDelimiter, "Comment delimiter")
	fs.BoolVar(&cfg.InlineComments, "inline-comments", cfg.InlineComments, "Strip trailing comments from values")
	fs.BoolVar(&cfg.SaveNulls, "save-nulls", cfg.SaveNulls, "Write null values when dumping")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Prompt for missing values")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
