package cli

import (
	"fmt"

	"github.com/howmanysmall/dupe/src/internal/config"
	"github.com/howmanysmall/dupe/src/internal/display"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration files",
	Long: `Validate the syntax and settings of a dupe configuration file
(JSON, JSONC or TOML) and print the effective values.

Examples:
  dupe validate                     # Validate the default config
  dupe validate --config saves.toml # Validate a specific config`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewLoader().Load(configFile)

		status := display.NewStatusRenderer(cmd.OutOrStdout(), false, false)
		status.SetQuiet(quiet)

		if err != nil {
			status.PrintError("Configuration is invalid", err.Error())
			return err
		}

		source := configFile
		if source == "" {
			source = "defaults or discovered dupe config"
		}

		status.PrintSuccess(fmt.Sprintf("Configuration is valid (%s)", source),
			fmt.Sprintf("Version:   %s", cfg.Version),
			fmt.Sprintf("Atomic:    %t", cfg.Copy.Atomic),
			fmt.Sprintf("Verify:    %t (%s)", cfg.Copy.Verify, cfg.Copy.ChecksumAlgo),
			fmt.Sprintf("Workers:   %d", cfg.Copy.Workers),
			fmt.Sprintf("Log level: %s", cfg.Logging.Level),
			fmt.Sprintf("Debounce:  %s", cfg.Watch.DebounceDelay),
			fmt.Sprintf("Jobs:      %d", len(cfg.Jobs)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
