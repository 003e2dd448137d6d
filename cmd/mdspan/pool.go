package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/fileutil"
)

// MaxWorkers caps --workers and MDSPAN_WORKERS.
const MaxWorkers = 32

// dirPermissions is used for output directories (rwxr-x---).
const dirPermissions = 0o750

// Sentinel errors for batch operations.
var (
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Job is one input to format. An empty OutputPath means the result is
// kept in memory for the caller to stream.
type Job struct {
	InputPath  string
	OutputPath string
}

// JobResult holds the outcome of a single job.
type JobResult struct {
	InputPath   string
	OutputPath  string
	Output      []byte
	Annotations int
	Err         error
	Duration    time.Duration
}

// formatBatch processes jobs concurrently with size workers. Results keep
// the order of jobs. Jobs not started before ctx is canceled fail with
// ctx.Err().
func formatBatch(ctx context.Context, size int, f *mdspan.Formatter, enc *encoder, jobs []Job) []JobResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := size
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]JobResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = JobResult{InputPath: jobs[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = formatFile(f, enc, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// formatFile reads, formats and encodes one input, writing it to
// OutputPath when set.
func formatFile(f *mdspan.Formatter, enc *encoder, job Job) JobResult {
	start := time.Now()
	result := JobResult{InputPath: job.InputPath, OutputPath: job.OutputPath}
	finish := func(err error) JobResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := fileutil.ReadFile(job.InputPath)
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadInput, err))
	}

	res, err := f.Format(string(content))
	if err != nil {
		return finish(err)
	}
	result.Annotations = len(res.Annotations)

	out, err := enc.Encode(res)
	if err != nil {
		return finish(err)
	}

	if job.OutputPath == "" {
		result.Output = out
		return finish(nil)
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err))
	}
	if err := fileutil.WriteFileAtomic(job.OutputPath, out); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	return finish(nil)
}

// resolvePoolSize determines the worker count.
// Priority: explicit setting > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
