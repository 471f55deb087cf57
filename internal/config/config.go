package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth int `toml:"tab-width"`
	// WatchInterval is the external-change poll period in milliseconds;
	// 0 turns watching off.
	WatchInterval *int `toml:"watch-interval"`
}

type Theme struct {
	Theme            string `toml:"theme"`
	Foreground       string `toml:"foreground"`
	Background       string `toml:"background"`
	CursorForeground string `toml:"cursor-foreground"`
	CursorBackground string `toml:"cursor-background"`
}

type Log struct {
	Debug bool `toml:"debug"`
}

type Config struct {
	Editor EditorOptions     `toml:"editor"`
	Theme  Theme             `toml:"theme"`
	Keymap map[string]string `toml:"keymap"`
	Log    Log               `toml:"log"`
}

const DefaultWatchInterval = 500

func Default() Config {
	watch := DefaultWatchInterval
	return Config{
		Editor: EditorOptions{
			TabWidth:      4,
			WatchInterval: &watch,
		},
		Theme: Theme{
			Foreground: "default",
			Background: "default",
		},
		Keymap: map[string]string{
			"left":           "move_left",
			"right":          "move_right",
			"up":             "move_up",
			"down":           "move_down",
			"alt+up":         "move_line_up",
			"alt+down":       "move_line_down",
			"ctrl+left":      "word_left",
			"ctrl+right":     "word_right",
			"alt+left":       "word_left",
			"alt+right":      "word_right",
			"home":           "line_start",
			"end":            "line_end",
			"ctrl+home":      "file_start",
			"ctrl+end":       "file_end",
			"enter":          "newline",
			"tab":            "insert_tab",
			"backspace":      "backspace",
			"ctrl+backspace": "delete_word_left",
			"alt+backspace":  "delete_word_left",
			"ctrl+w":         "delete_word_left",
			"del":            "delete_char",
			"ctrl+del":       "delete_word_right",
			"alt+del":        "delete_word_right",
			"shift+del":      "delete_line",
			"ctrl+k":         "delete_line",
			"esc":            "quit",
			"ctrl+q":         "quit",
			"ctrl+s":         "save",
		},
	}
}

// WatchEvery returns the external-change poll period in milliseconds.
func (c Config) WatchEvery() int {
	if c.Editor.WatchInterval == nil {
		return DefaultWatchInterval
	}
	return *c.Editor.WatchInterval
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.WatchInterval != nil && *userCfg.Editor.WatchInterval >= 0 {
		cfg.Editor.WatchInterval = userCfg.Editor.WatchInterval
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	cfg.Log.Debug = userCfg.Log.Debug
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.CursorForeground != "" {
		dst.CursorForeground = src.CursorForeground
	}
	if src.CursorBackground != "" {
		dst.CursorBackground = src.CursorBackground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TEDIT_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
