package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/howmanysmall/dupe/src/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: LevelDebug},
		{name: "error", input: "error", want: LevelError},
		{name: "silent", input: "silent", want: LevelSilent},
		{name: "empty defaults to error", input: "", want: LevelError},
		{name: "unknown", input: "trace", want: LevelError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantError bool
	}{
		{name: "debug writes both", level: LevelDebug, wantDebug: true, wantError: true},
		{name: "error drops debug", level: LevelError, wantDebug: false, wantError: true},
		{name: "silent drops both", level: LevelSilent, wantDebug: false, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := New(&buf, tt.level, false)
			logger.Debugf("FileCopier", "copied %d bytes", 12)
			logger.Errorf("FileCopier", "failed to open %s", "/x")

			out := buf.String()

			if got := strings.Contains(out, "DEBUG [FileCopier] copied 12 bytes"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v; output %q", got, tt.wantDebug, out)
			}

			if got := strings.Contains(out, "ERROR [FileCopier] failed to open /x"); got != tt.wantError {
				t.Errorf("error line present = %v, want %v; output %q", got, tt.wantError, out)
			}
		})
	}
}

func TestLoggerSetLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := New(&buf, LevelSilent, false)
	logger.Errorf("tag", "hidden")

	logger.SetLevel(LevelDebug)
	logger.Debugf("tag", "shown")

	if logger.Level() != LevelDebug {
		t.Errorf("Level() = %v, want debug", logger.Level())
	}

	if out := buf.String(); out != "DEBUG [tag] shown\n" {
		t.Errorf("output = %q, want a single debug line", out)
	}
}

func TestLoggerColorLabels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	New(&buf, LevelError, true).Errorf("tag", "boom")

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("colored output has no escape sequence: %q", out)
	}

	if !strings.HasSuffix(out, " [tag] boom\n") {
		t.Errorf("colored output = %q, want tagged message", out)
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatalf("Failed to create log file: %v", err)
	}
	defer f.Close()

	logger, err := FromConfig(&config.LoggingConfig{Level: "debug", Color: "auto"}, f)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	logger.Debugf("tag", "to file")

	content, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if string(content) != "DEBUG [tag] to file\n" {
		t.Errorf("log file = %q, want uncolored debug line", content)
	}

	if _, err := FromConfig(&config.LoggingConfig{Level: "loud"}, f); err == nil {
		t.Errorf("FromConfig accepted unknown level")
	}

	if _, err := FromConfig(&config.LoggingConfig{Color: "sometimes"}, f); err == nil {
		t.Errorf("FromConfig accepted unknown color mode")
	}
}
