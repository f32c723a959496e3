package execution

import (
	"context"
	"sync"
	"time"

	"tqc/internal/domain"
)

// WorkerPool parses report files in parallel
type WorkerPool struct {
	workers  int
	runner   *Runner
	progress Progress
}

// NewWorkerPool creates a new WorkerPool with the given number of workers
func NewWorkerPool(workers int, runner *Runner) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		runner:  runner,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Workers returns the number of parsing workers
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

type job struct {
	index int
	path  string
}

// Execute parses all files. Results keep the order of files regardless of
// which worker finished first. It stops handing out files once ctx is done.
func (wp *WorkerPool) Execute(ctx context.Context, files []string) ([]domain.ParsedReport, time.Duration, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}

	queue := make(chan job)
	results := make([]domain.ParsedReport, len(files))
	startTime := time.Now()

	go func() {
		defer close(queue)
		for i, f := range files {
			select {
			case <-ctx.Done():
				return
			case queue <- job{index: i, path: f}:
			}
		}
	}()

	var mu sync.Mutex
	var completed, parsed, failed int

	workerCount := wp.workers
	if workerCount > len(files) {
		workerCount = len(files)
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				result := wp.runner.Run(j.path)
				mu.Lock()
				results[j.index] = result
				completed++
				if result.Err != nil {
					failed++
				} else {
					parsed++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, parsed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	if err := ctx.Err(); err != nil {
		return nil, time.Since(startTime), err
	}
	return results, time.Since(startTime), nil
}
