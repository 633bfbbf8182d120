// Package config provides configuration loading and validation for the dupe CLI tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

const defaultDebounce = 100 * time.Millisecond

// Loader handles loading and parsing configuration files from multiple formats.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a new configuration loader with default search paths.
func NewLoader() *Loader {
	searchPaths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths,
			filepath.Join(home, ".config", "dupe"),
			filepath.Join(home, ".dupe"),
		)
	}

	return &Loader{
		searchPaths: searchPaths,
	}
}

// NewLoaderWithSearchPaths creates a loader that only looks in the given directories.
func NewLoaderWithSearchPaths(paths ...string) *Loader {
	return &Loader{searchPaths: paths}
}

// Load loads configuration from the specified path or searches for default config files.
// When no file is given or found, the defaults are returned.
func (l *Loader) Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = l.findDefaultConfig()
	}

	if configPath == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))

	config, err := l.parseByExtension(content, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (l *Loader) findDefaultConfig() string {
	candidates := []string{
		"dupe.jsonc",
		"dupe.json",
		"dupe.toml",
		".dupe.jsonc",
		".dupe.json",
		".dupe.toml",
	}

	for _, searchPath := range l.searchPaths {
		for _, candidate := range candidates {
			fullPath := filepath.Join(searchPath, candidate)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath
			}
		}
	}

	return ""
}

func (l *Loader) parseByExtension(content []byte, ext string) (*Config, error) {
	var config Config

	switch ext {
	case ".json", ".jsonc":
		cleaned := stripJSONComments(string(content))
		if !gjson.Valid(cleaned) {
			return nil, fmt.Errorf("invalid JSON")
		}

		if err := json.Unmarshal([]byte(cleaned), &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(content, &config); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// stripJSONComments removes // and /* */ comments that appear outside string literals.
func stripJSONComments(content string) string {
	var (
		out      strings.Builder
		inString bool
		escaped  bool
	)

	out.Grow(len(content))

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inString {
			out.WriteByte(ch)

			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}

			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)

			continue
		}

		if ch == '/' && i+1 < len(content) {
			switch content[i+1] {
			case '/':
				for i < len(content) && content[i] != '\n' {
					i++
				}

				if i < len(content) {
					out.WriteByte('\n')
				}

				continue
			case '*':
				end := strings.Index(content[i+2:], "*/")
				if end == -1 {
					return out.String()
				}

				i += end + 3

				continue
			}
		}

		out.WriteByte(ch)
	}

	return out.String()
}

// Validate checks config and fills in defaults for missing values.
func Validate(config *Config) error {
	if config.Version == "" {
		config.Version = "1.0"
	}

	if config.Copy == nil {
		config.Copy = &CopyConfig{}
	}

	if err := validateCopyConfig(config.Copy); err != nil {
		return fmt.Errorf("invalid copy config: %w", err)
	}

	if config.Logging == nil {
		config.Logging = &LoggingConfig{}
	}

	if err := validateLoggingConfig(config.Logging); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	if config.Watch == nil {
		config.Watch = &WatchConfig{}
	}

	if err := validateWatchConfig(config.Watch); err != nil {
		return fmt.Errorf("invalid watch config: %w", err)
	}

	return validateJobs(config.Jobs)
}

func validateCopyConfig(config *CopyConfig) error {
	if config.ChecksumAlgo == "" {
		config.ChecksumAlgo = "blake3"
	}

	validAlgos := []string{"blake3", "sha256"}
	if !slices.Contains(validAlgos, config.ChecksumAlgo) {
		return fmt.Errorf("invalid checksum algorithm %s, must be one of: %v", config.ChecksumAlgo, validAlgos)
	}

	if config.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", config.Workers)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	if config.Level == "" {
		config.Level = string(LevelError)
	}

	validLevels := []string{string(LevelDebug), string(LevelError), string(LevelSilent)}
	if !slices.Contains(validLevels, config.Level) {
		return fmt.Errorf("invalid level %s, must be one of: %v", config.Level, validLevels)
	}

	if config.Color == "" {
		config.Color = string(ColorAuto)
	}

	validModes := []string{string(ColorAuto), string(ColorAlways), string(ColorNever)}
	if !slices.Contains(validModes, config.Color) {
		return fmt.Errorf("invalid color mode %s, must be one of: %v", config.Color, validModes)
	}

	return nil
}

func validateWatchConfig(config *WatchConfig) error {
	if config.Debounce == "" {
		config.DebounceDelay = defaultDebounce
		config.Debounce = defaultDebounce.String()

		return nil
	}

	delay, err := time.ParseDuration(config.Debounce)
	if err != nil {
		return fmt.Errorf("invalid debounce %q: %w", config.Debounce, err)
	}

	if delay <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", config.Debounce)
	}

	config.DebounceDelay = delay

	return nil
}

func validateJobs(jobs []Job) error {
	destinations := make(map[string]int, len(jobs))

	for i, job := range jobs {
		if job.Source == "" {
			return fmt.Errorf("job %d: source must not be empty", i)
		}

		if job.Destination == "" {
			return fmt.Errorf("job %d: destination must not be empty", i)
		}

		key := filepath.Clean(job.Destination)
		if first, exists := destinations[key]; exists {
			return fmt.Errorf("job %d: destination %s already used by job %d", i, job.Destination, first)
		}

		destinations[key] = i
	}

	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Copy: &CopyConfig{
			Atomic:       false,
			Verify:       false,
			ChecksumAlgo: "blake3",
			Workers:      0,
		},
		Logging: &LoggingConfig{
			Level: string(LevelError),
			Color: string(ColorAuto),
		},
		Watch: &WatchConfig{
			Debounce:      defaultDebounce.String(),
			DebounceDelay: defaultDebounce,
		},
	}
}
