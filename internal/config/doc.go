// Package config handles the kvconf command's own settings.
//
// Settings are loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.kvconf/kvconf.toml or OS-specific config directory)
// 3. Project config file (kvconf.toml or .kvconf.toml in the working directory)
// 4. Environment variables (KVCONF_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.kvconf/kvconf.toml (preferred)
// - Windows: %APPDATA%\kvconf\kvconf.toml
// - macOS: ~/Library/Application Support/kvconf/kvconf.toml
// - Linux/BSD: $XDG_CONFIG_HOME/kvconf/kvconf.toml or ~/.config/kvconf/kvconf.toml
package config
