package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/nestedfolder/internal/resolve"
	"github.com/raphi011/nestedfolder/internal/storage"
)

// Output formats
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatTable = "table"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "NESTEDFOLDER_CONFIG"

// Config holds the nestedfolder configuration
type Config struct {
	FollowSymlinks bool     `toml:"follow_symlinks" json:"follow_symlinks"`
	MaxDepth       int      `toml:"max_depth" json:"max_depth"`
	Ignore         []string `toml:"ignore" json:"ignore"`
	Format         string   `toml:"format" json:"format"`
	Jobs           int      `toml:"jobs" json:"jobs"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-" json:"source,omitempty"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Format: FormatPlain,
		Jobs:   1,
	}
}

// ResolveOptions maps the config onto resolver options.
func (c *Config) ResolveOptions() resolve.Options {
	return resolve.Options{
		FollowSymlinks: c.FollowSymlinks,
		MaxDepth:       c.MaxDepth,
		Ignore:         c.Ignore,
	}
}

// Validate checks every field, returning the first problem found.
func (c *Config) Validate() error {
	if err := validateEnum(c.Format, "format", ValidFormats); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d: must be 0 (unlimited) or positive", c.MaxDepth)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("invalid jobs %d: must be at least 1", c.Jobs)
	}
	return validateIgnorePatterns(c.Ignore)
}

// Path returns the config file location, honouring NESTEDFOLDER_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nestedfolder", "config.toml"), nil
}

// Load reads the config from Path().
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Keys absent from the file keep
// their defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	// Explicit empty values fall back to defaults
	if cfg.Format == "" {
		cfg.Format = FormatPlain
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = 1
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	cfg.Source = path
	return cfg, nil
}

// Init writes the default config file to path.
// If force is true, overwrites an existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}

	return storage.WriteFile(path, []byte(DefaultConfig()), 0644)
}

// DefaultConfig returns the commented default config file content.
func DefaultConfig() string {
	return `# nestedfolder configuration
# Config location: ~/.config/nestedfolder/config.toml
# (override with NESTEDFOLDER_CONFIG)

# Descend into symlinked directories. Off by default: a symlink entry
# counts as a file and stops descent. No cycle detection is done, so
# set max_depth when enabling this on untrusted trees.
# follow_symlinks = false

# Stop after this many descents (0 = unlimited)
# max_depth = 0

# Entries skipped when counting a directory's children.
# Patterns match the entry's basename (filepath.Match syntax).
# ignore = [".DS_Store", "__MACOSX", "Thumbs.db"]

# Output format: "plain", "json" or "table"
format = "plain"

# Number of paths resolved concurrently
jobs = 1
`
}

type ctxKey struct{}

// WithConfig attaches the config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config from context, or nil if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}
