// Package config provides YAML-based configuration loading for chromagate.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/chromagate/internal/levels"
)

// Config is the whole application configuration.
type Config struct {
	Levels LevelsConfig `yaml:"levels"`
	Game   GameConfig   `yaml:"game"`
	UI     UIConfig     `yaml:"ui"`
	SSH    SSHConfig    `yaml:"ssh"`
	Web    WebConfig    `yaml:"web"`
	Log    LogConfig    `yaml:"log"`
}

// LevelsConfig selects where level texts come from.
type LevelsConfig struct {
	Source string `yaml:"source"` // "builtin", "sqlite" or a directory path
	Dir    string `yaml:"dir"`    // used when source is "dir"
	DB     string `yaml:"db"`     // sqlite level library path
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	Seed int64 `yaml:"seed"` // portal RNG seed, 0 = time-based
}

// UIConfig holds terminal rendering settings.
type UIConfig struct {
	CellWidth     int  `yaml:"cell_width"`     // characters per board cell, 1 or 2
	NoticeSeconds int  `yaml:"notice_seconds"` // how long completion notices stay up
	ShowLegend    bool `yaml:"show_legend"`
}

// SSHConfig holds settings for the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // empty = ~/.chromagate/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// WebConfig holds settings for the HTTP/websocket server.
type WebConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"` // empty = same origin only, "*" = any
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// NoticeDuration returns the notice lifetime as a duration.
func (c UIConfig) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeSeconds) * time.Second
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Levels.Source) == "" {
		return fmt.Errorf("config: levels.source is empty")
	}
	if c.Levels.Source == SourceSQLite && strings.TrimSpace(c.Levels.DB) == "" {
		return fmt.Errorf("config: levels.source is sqlite but levels.db is empty")
	}
	if c.UI.CellWidth < 1 || c.UI.CellWidth > 2 {
		return fmt.Errorf("config: ui.cell_width must be 1 or 2, got %d", c.UI.CellWidth)
	}
	if c.UI.NoticeSeconds < 0 {
		return fmt.Errorf("config: ui.notice_seconds must not be negative")
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: ssh.idle_timeout_minutes must not be negative")
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// Level source names. SourceDir is resolved here to Levels.Dir; the rest
// are passed to levels.Open as is.
const (
	SourceBuiltin = levels.SourceBuiltin
	SourceSQLite  = levels.SourceSQLite
	SourceDir     = "dir"
)

// SourceSpec returns the level source spec: "builtin", "sqlite" or a
// directory path. "dir" resolves to Levels.Dir.
func (c LevelsConfig) SourceSpec() string {
	if c.Source == SourceDir {
		return c.Dir
	}
	return c.Source
}
