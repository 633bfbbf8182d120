package core

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchRunner copies many independent jobs with a bounded number of workers.
type BatchRunner struct {
	copier       *FileCopier
	workers      int
	errorHandler *ErrorHandler
}

// NewBatchRunner creates a runner over copier. Zero or negative workers
// selects GOMAXPROCS.
func NewBatchRunner(copier *FileCopier, workers int) *BatchRunner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &BatchRunner{
		copier:       copier,
		workers:      workers,
		errorHandler: NewErrorHandler(0),
	}
}

// Run copies every job. A failing job does not stop the others; its error is
// reported in the matching JobResult. Cancelling ctx stops jobs that have not
// started yet. Results are returned in job order.
func (r *BatchRunner) Run(ctx context.Context, jobs []Job) ([]JobResult, *BatchStats, error) {
	if err := checkDistinctDestinations(jobs); err != nil {
		return nil, nil, err
	}

	stats := &BatchStats{
		Jobs:      int64(len(jobs)),
		StartTime: time.Now(),
	}
	results := make([]JobResult, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)

	for i, job := range jobs {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				results[i] = JobResult{Job: job, Err: err}
				return nil
			}

			start := time.Now()
			written, err := r.copier.CopyFile(job.Source, job.Destination)
			results[i] = JobResult{
				Job:      job,
				Bytes:    written,
				Err:      err,
				Duration: time.Since(start),
			}

			if err != nil {
				r.errorHandler.AddError(err)
				atomic.AddInt64(&stats.Failed, 1)

				return nil
			}

			atomic.AddInt64(&stats.Succeeded, 1)
			atomic.AddInt64(&stats.BytesTransferred, written)

			return nil
		})
	}

	_ = group.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Job == (Job{}) && results[i].Err == nil {
				results[i] = JobResult{Job: jobs[i], Err: err}
			}
		}

		return results, stats, fmt.Errorf("batch cancelled: %w", err)
	}

	return results, stats, nil
}

// ErrorSummary returns the failures seen so far, counted by kind.
func (r *BatchRunner) ErrorSummary() map[ErrorKind]int {
	return r.errorHandler.GetSummary()
}

func checkDistinctDestinations(jobs []Job) error {
	seen := make(map[string]int, len(jobs))

	for i, job := range jobs {
		key := filepath.Clean(job.Destination)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}

		if first, exists := seen[key]; exists {
			return fmt.Errorf("jobs %d and %d share destination %s", first, i, job.Destination)
		}

		seen[key] = i
	}

	return nil
}
