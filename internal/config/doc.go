// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.report2xctsk/report2xctsk.toml or OS-specific config directory)
// 3. Project config file (report2xctsk.toml or .report2xctsk.toml in the working directory)
// 4. Environment variables (XCTSK_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.report2xctsk/report2xctsk.toml (preferred)
// - Windows: %APPDATA%\report2xctsk\report2xctsk.toml
// - macOS: ~/Library/Application Support/report2xctsk/report2xctsk.toml
// - Linux/BSD: $XDG_CONFIG_HOME/report2xctsk/report2xctsk.toml or ~/.config/report2xctsk/report2xctsk.toml
package config
