// Package config loads Marquee's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/marquee/config.toml
//   - Preferences backend: file
//   - Preferences file: ~/.config/marquee/prefs.toml
//   - SQLite preferences: ~/.local/share/marquee/prefs.db
//   - System theme poll interval: 2s
//   - Log directory: ~/.local/share/marquee/logs
//   - Log level: info
//   - Follow system theme: true
//
// # TOML Format
//
//	prefs_backend = "file"          # file | sqlite | memory
//	prefs_path = "~/.config/marquee/prefs.toml"
//	sqlite_path = "~/.local/share/marquee/prefs.db"
//	poll_interval = "2s"
//	log_dir = "~/.local/share/marquee/logs"
//	log_level = "info"
//	follow_system = true
//
// All fields are optional. Tilde expansion is performed on every path.
// Setting follow_system = false makes Marquee behave as it would on a host
// with no colour scheme signal: the persisted preference is used as-is.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, an unknown prefs_backend, or a malformed
//     poll_interval (all reported as "parse config: ...")
//
// Missing config files are NOT an error.
package config
