package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("TEDIT_CONFIG_HOME", "/tmp/tedit-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/tedit-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/tedit-config")
	}

	t.Setenv("TEDIT_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/tedit" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/tedit")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("TEDIT_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.WatchEvery() != DefaultWatchInterval {
		t.Fatalf("WatchEvery = %d, want %d", cfg.WatchEvery(), DefaultWatchInterval)
	}
	if cfg.Keymap["ctrl+s"] != "save" || cfg.Keymap["esc"] != "quit" {
		t.Fatalf("default keymap missing bindings: %v", cfg.Keymap)
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
cursor-background = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
watch-interval = 0

[theme]
theme = "test"
cursor-foreground = "#123456"

[keymap]
"ctrl+d" = "delete_line"
esc = "line_start"

[log]
debug = true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.WatchEvery() != 0 {
		t.Fatalf("WatchEvery = %d, want 0", cfg.WatchEvery())
	}
	if cfg.Theme.Foreground != "#111111" || cfg.Theme.Background != "#222222" {
		t.Fatalf("theme colors not loaded: %+v", cfg.Theme)
	}
	if cfg.Theme.CursorBackground != "#333333" {
		t.Fatalf("CursorBackground = %q", cfg.Theme.CursorBackground)
	}
	if cfg.Theme.CursorForeground != "#123456" {
		t.Fatalf("CursorForeground = %q, want override", cfg.Theme.CursorForeground)
	}
	if cfg.Keymap["ctrl+d"] != "delete_line" {
		t.Fatalf("keymap override missing: %v", cfg.Keymap["ctrl+d"])
	}
	if cfg.Keymap["esc"] != "line_start" {
		t.Fatalf("esc = %q, want line_start", cfg.Keymap["esc"])
	}
	if cfg.Keymap["ctrl+q"] != "quit" {
		t.Fatalf("default binding lost: %q", cfg.Keymap["ctrl+q"])
	}
	if !cfg.Log.Debug {
		t.Fatalf("Log.Debug = false, want true")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEDIT_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "white"
cursor-background = "yellow"
`)
	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "white" || theme.CursorBackground != "yellow" {
		t.Fatalf("theme = %+v", theme)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEDIT_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\ntab-width = ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadMissingThemeFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEDIT_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[theme]\ntheme = \"nope\"\n")
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing theme error")
	}
}
