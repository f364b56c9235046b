package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/nestedfolder/internal/resolve"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Format != FormatPlain {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatPlain)
	}
	if cfg.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", cfg.Jobs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
	if opts := cfg.ResolveOptions(); opts.FollowSymlinks || opts.MaxDepth != 0 || len(opts.Ignore) != 0 {
		t.Errorf("default resolve options = %+v, want zero", opts)
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	content := DefaultConfig()
	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		t.Errorf("DefaultConfig() produces invalid TOML: %v\nContent:\n%s", err, content)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file gives defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("LoadFile error = %v", err)
		}
		if cfg.Format != FormatPlain || cfg.Source != "" {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("all keys", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
follow_symlinks = true
max_depth = 5
ignore = [".DS_Store", "__MACOSX"]
format = "json"
jobs = 4
`)
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile error = %v", err)
		}
		want := resolve.Options{FollowSymlinks: true, MaxDepth: 5, Ignore: []string{".DS_Store", "__MACOSX"}}
		got := cfg.ResolveOptions()
		if got.FollowSymlinks != want.FollowSymlinks || got.MaxDepth != want.MaxDepth || !slices.Equal(got.Ignore, want.Ignore) {
			t.Errorf("ResolveOptions = %+v, want %+v", got, want)
		}
		if cfg.Format != FormatJSON || cfg.Jobs != 4 {
			t.Errorf("Format/Jobs = %q/%d", cfg.Format, cfg.Jobs)
		}
		if cfg.Source != path {
			t.Errorf("Source = %q, want %q", cfg.Source, path)
		}
	})

	t.Run("unset keys keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFile(writeConfig(t, "max_depth = 2\n"))
		if err != nil {
			t.Fatalf("LoadFile error = %v", err)
		}
		if cfg.Format != FormatPlain || cfg.Jobs != 1 || cfg.MaxDepth != 2 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("empty format falls back", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFile(writeConfig(t, "format = \"\"\njobs = 0\n"))
		if err != nil {
			t.Fatalf("LoadFile error = %v", err)
		}
		if cfg.Format != FormatPlain || cfg.Jobs != 1 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"syntax error", "format = ", "failed to parse config file"},
		{"bad format", `format = "xml"`, `invalid format "xml"`},
		{"negative depth", "max_depth = -1", "invalid max_depth"},
		{"negative jobs", "jobs = -2", "invalid jobs"},
		{"bad pattern", `ignore = ["[oops"]`, "invalid ignore[0]"},
		{"empty pattern", `ignore = [""]`, "empty pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadFile succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error = %q, want to contain %q", err, tt.errPart)
			}
			if cfg.Format != FormatPlain {
				t.Errorf("invalid config should return defaults, got %+v", cfg)
			}
		})
	}
}

func TestPath(t *testing.T) {
	// Cannot use t.Parallel() (t.Setenv mutates process env)
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/custom/config.toml")
		got, err := Path()
		if err != nil {
			t.Fatal(err)
		}
		if got != "/custom/config.toml" {
			t.Errorf("Path = %q, want %q", got, "/custom/config.toml")
		}
	})

	t.Run("default location", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		got, err := Path()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".config", "nestedfolder", "config.toml"); got != want {
			t.Errorf("Path = %q, want %q", got, want)
		}
	})

	t.Run("Load uses env path", func(t *testing.T) {
		t.Setenv(EnvConfigPath, writeConfig(t, "jobs = 3\n"))
		cfg, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Jobs != 3 {
			t.Errorf("Jobs = %d, want 3", cfg.Jobs)
		}
	})
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init error = %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	if err := Init(path, false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Init error = %v, want already exists", err)
	}
	if err := Init(path, true); err != nil {
		t.Errorf("forced Init error = %v", err)
	}
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		allowed []string
		wantErr bool
	}{
		{"empty value is ok", "", []string{"a", "b"}, false},
		{"valid value", "a", []string{"a", "b"}, false},
		{"invalid value", "c", []string{"a", "b"}, true},
		{"case sensitive", "A", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, "test", tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q, %v) error = %v, wantErr %v", tt.value, tt.allowed, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"plain", "json", "table"}, `"plain", "json", or "table"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Format: FormatTable}
		ctx := WithConfig(context.Background(), cfg)
		if got := FromContext(ctx); got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("nil when not set", func(t *testing.T) {
		t.Parallel()
		if got := FromContext(context.Background()); got != nil {
			t.Errorf("FromContext on empty context = %v, want nil", got)
		}
	})
}
