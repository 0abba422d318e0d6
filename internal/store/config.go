package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type GlobalConfig struct {
	// CurrentBoard is the board the TUI opens by default.
	CurrentBoard string `json:"currentBoard,omitempty"`

	// TUI holds optional user preferences for the interactive board.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "neon").
	Profile string `json:"profile,omitempty"`

	// LongPressMs is how long a mouse press must be held before a card can be dragged.
	LongPressMs int `json:"longPressMs,omitempty"`
	// TapGuardMs swallows the click that trails the end of a drag.
	TapGuardMs int `json:"tapGuardMs,omitempty"`
	// CollisionPadding grows every list's drop zone by this many cells.
	CollisionPadding int `json:"collisionPadding,omitempty"`
}

func (c *TUIConfig) LongPress() time.Duration {
	if c == nil || c.LongPressMs <= 0 {
		return 0
	}
	return time.Duration(c.LongPressMs) * time.Millisecond
}

func (c *TUIConfig) TapGuard() time.Duration {
	if c == nil || c.TapGuardMs <= 0 {
		return 0
	}
	return time.Duration(c.TapGuardMs) * time.Millisecond
}

func (c *TUIConfig) Padding() int {
	if c == nil || c.CollisionPadding < 0 {
		return 0
	}
	return c.CollisionPadding
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.kanban).
	if v := strings.TrimSpace(os.Getenv("KANBAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kanban"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultDataDir is where the board database lives unless --dir says otherwise.
func DefaultDataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename: the CLI and a running TUI may both write config.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
