package cli

import (
	"fmt"
	"time"

	"github.com/howmanysmall/dupe/src/internal/core"
	"github.com/spf13/cobra"
)

var interval string

var watchCmd = &cobra.Command{
	Use:   "watch <source> <destination>",
	Short: "Copy a file now and again whenever it changes",
	Long: `Copy source to destination, then keep watching source and copy it again
after each change settles. Runs until interrupted.

Changes are debounced: a burst of writes within the interval produces one copy.

Examples:
  dupe watch ./asset.dat /saves/asset.dat
  dupe watch ./asset.dat /saves/asset.dat --interval 1s --atomic`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		debounce := env.config.Watch.DebounceDelay

		if cmd.Flags().Changed("interval") {
			debounce, err = time.ParseDuration(interval)
			if err != nil || debounce <= 0 {
				return fmt.Errorf("invalid interval %q", interval)
			}
		}

		watcher, err := core.NewFileWatcher(debounce)
		if err != nil {
			return err
		}

		env.status.PrintInfo("Watching for changes",
			fmt.Sprintf("Source:      %s", args[0]),
			fmt.Sprintf("Destination: %s", args[1]),
			fmt.Sprintf("Debounce:    %s", debounce))

		return env.copier.Follow(cmd.Context(), watcher, args[0], args[1], env.status.PrintJobResult)
	},
}

func init() {
	addCopyFlags(watchCmd)
	watchCmd.Flags().StringVar(&interval, "interval", "", "debounce interval between a change and the copy (default from config, 100ms)")

	rootCmd.AddCommand(watchCmd)
}
