package config

import "os"

// Environment variable names.
const (
	EnvAssignmentOperator = "KVCONF_OPERATOR"
	EnvCommentDelimiter   = "KVCONF_COMMENT"
	EnvInlineComments     = "KVCONF_INLINE_COMMENTS"
	EnvSaveNulls          = "KVCONF_SAVE_NULLS"
	EnvInteractive        = "KVCONF_INTERACTIVE"
	EnvLogLevel           = "KVCONF_LOG_LEVEL"
	EnvLogFormat          = "KVCONF_LOG_FORMAT"
	EnvLogTimestamps      = "KVCONF_LOG_TIMESTAMPS"
	EnvLogCaller          = "KVCONF_LOG_CALLER"
	EnvLogFile            = "KVCONF_LOG_FILE"
)

// loadFromEnv overrides config from environment variables. Empty variables
// are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	str := func(env, field string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			sources[field] = SourceEnv
		}
	}
	boolean := func(env, field string, dst *bool) {
		if v := os.Getenv(env); v != "" {
			*dst = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	str(EnvAssignmentOperator, "assignment_operator", &cfg.AssignmentOperator)
	str(EnvCommentDelimiter, "comment_delimiter", &cfg.CommentDelimiter)
	boolean(EnvInlineComments, "inline_comments", &cfg.InlineComments)
	boolean(EnvSaveNulls, "save_nulls", &cfg.SaveNulls)
	boolean(EnvInteractive, "interactive", &cfg.Interactive)
	str(EnvLogLevel, "log_level", &cfg.LogLevel)
	str(EnvLogFormat, "log_format", &cfg.LogFormat)
	boolean(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps)
	boolean(EnvLogCaller, "log_caller", &cfg.LogCaller)
	str(EnvLogFile, "log_file", &cfg.LogFile)
}
