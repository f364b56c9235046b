package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/nestedfolder/internal/config"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	t.Setenv(config.EnvConfigPath, path)

	res := runCLI(t, config.Default(), "", "config", "init")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Created config file: "+path) {
		t.Errorf("stdout = %q", res.stdout)
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Format != config.FormatPlain || loaded.Jobs != 1 {
		t.Errorf("loaded = %+v, want defaults", loaded)
	}

	// Second init refuses to overwrite
	res = runCLI(t, config.Default(), "", "config", "init")
	if res.err == nil || !strings.Contains(res.err.Error(), "already exists") {
		t.Errorf("error = %v, want already exists", res.err)
	}

	res = runCLI(t, config.Default(), "", "config", "init", "-f")
	if res.err != nil {
		t.Errorf("init -f: unexpected error: %v", res.err)
	}
}

func TestConfigInit_Stdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv(config.EnvConfigPath, path)

	res := runCLI(t, config.Default(), "", "config", "init", "-s")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.stdout != config.DefaultConfig() {
		t.Errorf("stdout should be the default config, got:\n%s", res.stdout)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("-s should not write %s", path)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Ignore = []string{".DS_Store"}
	cfg.Source = "/etc/nestedfolder.toml"

	res := runCLI(t, cfg, "", "config", "show", "--max-depth", "4", "--ignore", "__MACOSX")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	for _, want := range []string{
		"Config file: /etc/nestedfolder.toml",
		"follow_symlinks: false",
		"max_depth: 4",
		"ignore: .DS_Store, __MACOSX",
		"format: plain",
		"jobs: 1",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}

	// Flags must not leak into the loaded config
	if diff := cmp.Diff([]string{".DS_Store"}, cfg.Ignore); diff != "" {
		t.Errorf("loaded config mutated (-want +got):\n%s", diff)
	}
}

func TestConfigShow_JSON(t *testing.T) {
	t.Parallel()

	res := runCLI(t, config.Default(), "", "config", "show", "--json", "-L")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	var got config.Config
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}

	want := config.Default()
	want.FollowSymlinks = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
