// Package dupe is the embeddable entry point of the file duplication primitive.
//
// CopyFile is the boundary consumed by a managed caller: it takes two
// caller-resolved paths and reports only whether the copy fully succeeded.
// Diagnostics for every failure, and for success, go to the logging sink.
package dupe

import (
	"os"
	"sync"

	"github.com/howmanysmall/dupe/src/internal/config"
	"github.com/howmanysmall/dupe/src/internal/core"
	"github.com/howmanysmall/dupe/src/internal/logging"
)

// Config re-exports config.Config for public API consumers.
type Config = config.Config

var (
	defaultOnce   sync.Once
	defaultCopier *core.FileCopier
)

func sharedCopier() *core.FileCopier {
	defaultOnce.Do(func() {
		defaultCopier = core.NewFileCopier(logging.NewDefault())
	})

	return defaultCopier
}

// CopyFile copies sourcePath over destPath, creating or truncating it with
// mode 0644. It returns true only when the entire source was copied and both
// files were closed cleanly. Empty paths return false without touching the
// file system.
func CopyFile(sourcePath, destPath string) bool {
	_, err := sharedCopier().CopyFile(sourcePath, destPath)
	return err == nil
}

// CopyFileWithConfig is CopyFile using the copy and logging settings of cfg.
// An invalid cfg returns false.
func CopyFileWithConfig(cfg *Config, sourcePath, destPath string) bool {
	if cfg == nil {
		return CopyFile(sourcePath, destPath)
	}

	if err := config.Validate(cfg); err != nil {
		return false
	}

	logger, err := logging.FromConfig(cfg.Logging, os.Stderr)
	if err != nil {
		return false
	}

	copier, err := core.NewFileCopierFromConfig(cfg.Copy, logger)
	if err != nil {
		return false
	}

	_, err = copier.CopyFile(sourcePath, destPath)

	return err == nil
}

// LoadConfig loads and validates a configuration file from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	return config.NewLoader().Load(configPath)
}
