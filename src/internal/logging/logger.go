// Package logging provides the tagged diagnostic sink used by dupe.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/howmanysmall/dupe/src/internal/config"
	"golang.org/x/term"
)

// Level is the minimum severity a Logger writes.
type Level int

// Logger levels, from most to least verbose.
const (
	LevelDebug Level = iota
	LevelError
	LevelSilent
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLevel converts a configured level name.
func ParseLevel(name string) (Level, error) {
	switch config.LogLevel(name) {
	case config.LevelDebug:
		return LevelDebug, nil
	case config.LevelError, "":
		return LevelError, nil
	case config.LevelSilent:
		return LevelSilent, nil
	default:
		return LevelError, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger writes lines of the form "LEVEL [Tag] message".
type Logger struct {
	mu         sync.RWMutex
	level      Level
	out        *log.Logger
	debugLabel string
	errorLabel string
}

// New creates a Logger writing to w.
func New(w io.Writer, level Level, colorEnabled bool) *Logger {
	l := &Logger{
		level:      level,
		out:        log.New(w, "", 0),
		debugLabel: "DEBUG",
		errorLabel: "ERROR",
	}

	if colorEnabled {
		debug := color.New(color.FgBlue)
		debug.EnableColor()

		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.EnableColor()

		l.debugLabel = debug.Sprint(l.debugLabel)
		l.errorLabel = errorColor.Sprint(l.errorLabel)
	}

	return l
}

// NewDefault creates an error-level Logger on stderr, colored when stderr is a terminal.
func NewDefault() *Logger {
	return New(os.Stderr, LevelError, term.IsTerminal(int(os.Stderr.Fd())))
}

// FromConfig creates a Logger on f as described by cfg.
func FromConfig(cfg *config.LoggingConfig, f *os.File) (*Logger, error) {
	if cfg == nil {
		cfg = &config.LoggingConfig{}
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var colorEnabled bool

	switch config.ColorMode(cfg.Color) {
	case config.ColorAlways:
		colorEnabled = true
	case config.ColorNever:
		colorEnabled = false
	case config.ColorAuto, "":
		colorEnabled = term.IsTerminal(int(f.Fd()))
	default:
		return nil, fmt.Errorf("unknown color mode %q", cfg.Color)
	}

	return New(f, level, colorEnabled), nil
}

// SetLevel changes the minimum severity written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = level
}

// Level returns the minimum severity written.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.level
}

// Debugf writes a debug line under tag.
func (l *Logger) Debugf(tag, format string, args ...any) {
	if l.Level() > LevelDebug {
		return
	}

	l.write(l.debugLabel, tag, format, args)
}

// Errorf writes an error line under tag.
func (l *Logger) Errorf(tag, format string, args ...any) {
	if l.Level() > LevelError {
		return
	}

	l.write(l.errorLabel, tag, format, args)
}

func (l *Logger) write(label, tag, format string, args []any) {
	l.out.Printf("%s [%s] %s", label, tag, fmt.Sprintf(format, args...))
}
