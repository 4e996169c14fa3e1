package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultAssignmentOperator = "="
	DefaultCommentDelimiter   = "#"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

// Config holds the settings of the kvconf command itself. It does not
// describe the key/value files the command operates on.
type Config struct {
	// File format
	AssignmentOperator string `toml:"assignment_operator"`
	CommentDelimiter   string `toml:"comment_delimiter"`
	InlineComments     bool   `toml:"inline_comments"`
	SaveNulls          bool   `toml:"save_nulls"`

	// Prompt for missing values in "init" unless disabled per call.
	Interactive bool `toml:"interactive"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"assignment_operator",
		"comment_delimiter",
		"inline_comments",
		"save_nulls",
		"interactive",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.AssignmentOperator = DefaultAssignmentOperator
	cfg.CommentDelimiter = DefaultCommentDelimiter
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
