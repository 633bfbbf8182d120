package cli

import (
	"fmt"
	"time"

	"github.com/howmanysmall/dupe/src/internal/core"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <destination>",
	Short: "Copy one file over a destination path",
	Long: `Copy the full contents of source to destination. The destination is
created with mode 0644 or truncated if it exists. Paths are used as given.

By default the destination is written in place, so a failed copy may leave
it empty or partial. Use --atomic to stage the copy next to the destination
and rename it into place only on success.

Examples:
  dupe copy ./Active.sav /saves/Active.sav
  dupe copy ./a.bin ./b.bin --verify --checksum sha256`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		job := core.Job{Source: args[0], Destination: args[1]}

		start := time.Now()
		written, err := env.copier.CopyFile(job.Source, job.Destination)
		env.status.PrintJobResult(core.JobResult{
			Job:      job,
			Bytes:    written,
			Err:      err,
			Duration: time.Since(start),
		})

		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}

		return nil
	},
}

func init() {
	addCopyFlags(copyCmd)
	rootCmd.AddCommand(copyCmd)
}
