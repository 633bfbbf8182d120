package cli

import (
	"errors"
	"fmt"

	"github.com/howmanysmall/dupe/src/internal/core"
	"github.com/howmanysmall/dupe/src/internal/display"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Copy every job listed in the config file",
	Long: `Copy each source/destination pair from the "jobs" list of the config
file. Jobs run concurrently up to --workers; each one is an independent copy
and a failure does not stop the rest. Two jobs may not share a destination.

Examples:
  dupe batch                        # Use dupe.jsonc / dupe.toml
  dupe batch --config saves.toml    # Use a specific config
  dupe batch --workers 1 --atomic   # One at a time, staged`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		if len(env.config.Jobs) == 0 {
			return errors.New("no jobs configured")
		}

		jobs := make([]core.Job, 0, len(env.config.Jobs))
		for _, job := range env.config.Jobs {
			jobs = append(jobs, core.Job{Source: job.Source, Destination: job.Destination})
		}

		if !quiet {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), display.CreateBanner("Dupe Batch", env.colorEnabled))
		}

		env.status.PrintProgress(fmt.Sprintf("Copying %d files", len(jobs)))

		runner := core.NewBatchRunner(env.copier, env.config.Copy.Workers)

		results, stats, err := runner.Run(cmd.Context(), jobs)
		if err != nil && stats == nil {
			return err
		}

		for _, result := range results {
			env.status.PrintJobResult(result)
		}

		env.status.PrintBatchSummary(stats, runner.ErrorSummary())

		if err != nil {
			return err
		}

		if stats.Failed > 0 {
			return fmt.Errorf("%d of %d copies failed", stats.Failed, stats.Jobs)
		}

		return nil
	},
}

func init() {
	addCopyFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
