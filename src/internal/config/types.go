package config

import (
	"time"
)

// Config represents the main configuration structure for dupe.
type Config struct {
	Version string         `json:"version" toml:"version"`
	Copy    *CopyConfig    `json:"copy,omitempty" toml:"copy,omitempty"`
	Logging *LoggingConfig `json:"logging,omitempty" toml:"logging,omitempty"`
	Watch   *WatchConfig   `json:"watch,omitempty" toml:"watch,omitempty"`
	Jobs    []Job          `json:"jobs,omitempty" toml:"jobs,omitempty"`
}

// CopyConfig defines how individual copies are performed.
type CopyConfig struct {
	Atomic       bool   `json:"atomic" toml:"atomic"`
	Verify       bool   `json:"verify" toml:"verify"`
	ChecksumAlgo string `json:"checksumAlgo" toml:"checksumAlgo"`
	Workers      int    `json:"workers" toml:"workers"`
}

// LoggingConfig defines the diagnostic sink.
type LoggingConfig struct {
	Level string `json:"level" toml:"level"`
	Color string `json:"color" toml:"color"`
}

// WatchConfig defines watch mode behavior.
type WatchConfig struct {
	Debounce      string        `json:"debounce" toml:"debounce"`
	DebounceDelay time.Duration `json:"-" toml:"-"`
}

// Job is a source/destination pair copied by the batch command.
type Job struct {
	Source      string `json:"source" toml:"source"`
	Destination string `json:"destination" toml:"destination"`
}

// LogLevel represents the minimum severity that is written.
type LogLevel string

// Log levels
const (
	LevelDebug  LogLevel = "debug"
	LevelError  LogLevel = "error"
	LevelSilent LogLevel = "silent"
)

// ColorMode controls colored output.
type ColorMode string

// Color modes
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)
