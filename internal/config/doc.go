// Package config handles loading and validation of nestedfolder configuration.
//
// Configuration is read from ~/.config/nestedfolder/config.toml. The
// NESTEDFOLDER_CONFIG environment variable points at a different file.
// A missing file is not an error; defaults apply.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags
//   - Config file settings
//   - Default values
//
// # Keys
//
//   - follow_symlinks: descend into symlinked directories (default false)
//   - max_depth: stop after this many descents, 0 for unlimited
//   - ignore: basename globs skipped when counting entries
//   - format: "plain", "json" or "table"
//   - jobs: number of inputs resolved concurrently (default 1)
//
// The zero-valued defaults reproduce the plain descent rule exactly.
package config
