package display

import (
	"fmt"
	"sort"
	"time"

	"github.com/howmanysmall/dupe/src/internal/core"
)

// PrintJobResult prints one line for a finished copy.
func (sr *StatusRenderer) PrintJobResult(result core.JobResult) {
	if result.OK() {
		sr.PrintSuccess(fmt.Sprintf("%s → %s", result.Job.Source, result.Job.Destination),
			fmt.Sprintf("%s in %s", FormatBytes(result.Bytes), result.Duration.Round(time.Microsecond)))

		return
	}

	sr.PrintError(fmt.Sprintf("%s → %s", result.Job.Source, result.Job.Destination),
		fmt.Sprintf("%s: %v", core.KindOf(result.Err), result.Err))
}

// PrintBatchSummary prints totals for a batch and the failure counts by kind.
func (sr *StatusRenderer) PrintBatchSummary(stats *core.BatchStats, failures map[core.ErrorKind]int) {
	details := []string{
		fmt.Sprintf("Jobs:        %d", stats.Jobs),
		fmt.Sprintf("Succeeded:   %d", stats.Succeeded),
		fmt.Sprintf("Failed:      %d", stats.Failed),
		fmt.Sprintf("Transferred: %s", FormatBytes(stats.BytesTransferred)),
		fmt.Sprintf("Duration:    %s", stats.Duration.Round(time.Millisecond)),
	}

	kinds := make([]core.ErrorKind, 0, len(failures))
	for kind := range failures {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		details = append(details, fmt.Sprintf("  %s: %d", kind, failures[kind]))
	}

	if stats.Failed > 0 {
		sr.PrintError("Batch finished with failures", details...)
		return
	}

	sr.PrintSuccess("Batch completed successfully", details...)
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
