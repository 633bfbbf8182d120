// Package cli provides the command-line interface for dupe: single copies,
// batches from a config file, watch mode and config validation.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	quiet      bool
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "dupe",
	Short: "Byte-exact file duplication",
	Long: `Dupe copies one regular file over another path, creating or truncating
the destination, and reports whether the whole stream was copied.

Examples:
  dupe copy ./Active.sav /saves/Active.sav     # Copy one file
  dupe copy ./a.bin ./b.bin --atomic --verify  # Stage, rename, then verify
  dupe batch --config dupe.jsonc               # Copy every configured job
  dupe watch ./asset.dat /saves/asset.dat      # Keep a destination in step`,
	SilenceUsage: true,
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, buildTime, commit string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf(`dupe version %s
Build time: %s
Commit: %s
`, version, buildTime, commit))
}

// Execute runs the root command for the dupe CLI. Cancelling ctx stops watch
// mode and any batch jobs that have not started.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is dupe.jsonc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every copy at debug level")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of concurrent batch copies (0 = config or auto)")
}
