package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Editor.MaxUndo != 1000 || cfg.Editor.Coalesce != "adjacent" {
		t.Errorf("editor defaults = %+v", cfg.Editor)
	}
	if !cfg.View.Ascii || cfg.View.Theme != "dark" {
		t.Errorf("view defaults = %+v", cfg.View)
	}
	if cfg.Diff.Strategy != "resync" || cfg.Diff.Lookahead != 1024 {
		t.Errorf("diff defaults = %+v", cfg.Diff)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.MaxUndo != 1000 {
		t.Errorf("maxUndo = %d, want default", cfg.Editor.MaxUndo)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[editor]
maxUndo = 50

[view]
columns = 32
theme = "light"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.MaxUndo != 50 {
		t.Errorf("maxUndo = %d, want 50", cfg.Editor.MaxUndo)
	}
	if cfg.View.Columns != 32 || cfg.View.Theme != "light" {
		t.Errorf("view = %+v", cfg.View)
	}
	// Untouched sections keep their defaults.
	if cfg.Editor.Coalesce != "adjacent" || cfg.Diff.Strategy != "resync" {
		t.Error("defaults lost for unset keys")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"THEME", "light")
	t.Setenv(EnvPrefix+"MAX_UNDO", "7")
	t.Setenv(EnvPrefix+"DIFF_STRATEGY", "myers")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.View.Theme)
	}
	if cfg.Editor.MaxUndo != 7 {
		t.Errorf("maxUndo = %d, want 7", cfg.Editor.MaxUndo)
	}
	if cfg.Diff.Strategy != "myers" {
		t.Errorf("strategy = %q, want myers", cfg.Diff.Strategy)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[view]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPrefix+"THEME", "light")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View.Theme != "light" {
		t.Errorf("theme = %q, environment should win", cfg.View.Theme)
	}
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPrefix+"CONFIG_DIR", dir)
	if got := DefaultPath(); got != filepath.Join(dir, "config.toml") {
		t.Errorf("DefaultPath = %q", got)
	}
}
