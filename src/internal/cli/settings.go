package cli

import (
	"fmt"
	"os"

	"github.com/howmanysmall/dupe/src/internal/config"
	"github.com/howmanysmall/dupe/src/internal/core"
	"github.com/howmanysmall/dupe/src/internal/display"
	"github.com/howmanysmall/dupe/src/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	atomicCopy   bool
	verifyCopy   bool
	checksumAlgo string
)

// environment is everything a command needs, built from the config file and flags.
type environment struct {
	config       *config.Config
	logger       *logging.Logger
	copier       *core.FileCopier
	status       *display.StatusRenderer
	colorEnabled bool
}

func addCopyFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&atomicCopy, "atomic", false, "stage into a temp file and rename into place")
	cmd.Flags().BoolVar(&verifyCopy, "verify", false, "compare checksums after copying")
	cmd.Flags().StringVar(&checksumAlgo, "checksum", "", "checksum algorithm for --verify (blake3, sha256)")
}

func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.NewLoader().Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyCopyFlags(cmd, cfg.Copy)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.FromConfig(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	if verbose {
		logger.SetLevel(logging.LevelDebug)
	}

	copier, err := core.NewFileCopierFromConfig(cfg.Copy, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure copier: %w", err)
	}

	colorEnabled := stdoutColor(cfg.Logging)

	status := display.NewStatusRenderer(cmd.OutOrStdout(), colorEnabled, verbose)
	status.SetQuiet(quiet)

	return &environment{
		config:       cfg,
		logger:       logger,
		copier:       copier,
		status:       status,
		colorEnabled: colorEnabled,
	}, nil
}

func applyCopyFlags(cmd *cobra.Command, cfg *config.CopyConfig) {
	if cfg == nil {
		return
	}

	flags := cmd.Flags()

	if flags.Lookup("atomic") != nil && flags.Changed("atomic") {
		cfg.Atomic = atomicCopy
	}

	if flags.Lookup("verify") != nil && flags.Changed("verify") {
		cfg.Verify = verifyCopy
	}

	if flags.Lookup("checksum") != nil && flags.Changed("checksum") {
		cfg.ChecksumAlgo = checksumAlgo
	}

	if workers > 0 {
		cfg.Workers = workers
	}
}

func stdoutColor(cfg *config.LoggingConfig) bool {
	switch config.ColorMode(cfg.Color) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
