package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called once per completed row with the number of rows
// finished so far and the total. Calls are serialized.
type ProgressFunc func(completed, total int)

// RowFunc renders row y. It is called at most once per row per Run.
type RowFunc func(worker, y int) error

// WorkerPool runs row tasks on a fixed set of goroutines. Each Run is a
// scoped parallel region: it returns only after every worker has exited.
type WorkerPool struct {
	numWorkers int
	progress   ProgressFunc

	mu        sync.Mutex // guards progress calls and completed
	completed int
}

// NewWorkerPool creates a pool with numWorkers goroutines. Zero or a
// negative count means one worker per logical CPU.
func NewWorkerPool(numWorkers int, progress ProgressFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		progress:   progress,
	}
}

// GetNumWorkers returns the number of workers Run would start for rows
func (wp *WorkerPool) GetNumWorkers(rows int) int {
	return min(wp.numWorkers, max(rows, 1))
}

// Run calls fn for every row in [0, rows). Workers claim the next unclaimed
// row from a shared counter until none remain, so faster workers take more
// rows. The first error or panic stops further claims and is returned once
// all workers have joined.
func (wp *WorkerPool) Run(rows int, fn RowFunc) error {
	wp.mu.Lock()
	wp.completed = 0
	wp.mu.Unlock()

	var (
		next   atomic.Int64
		failed atomic.Bool
		g      errgroup.Group
	)

	for worker := range wp.GetNumWorkers(rows) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					failed.Store(true)
					err = fmt.Errorf("worker %d panicked: %v", worker, r)
				}
			}()

			for !failed.Load() {
				y := int(next.Add(1) - 1)
				if y >= rows {
					return nil
				}
				if err := fn(worker, y); err != nil {
					failed.Store(true)
					return fmt.Errorf("row %d: %w", y, err)
				}
				wp.rowDone(rows)
			}
			return nil
		})
	}

	return g.Wait()
}

func (wp *WorkerPool) rowDone(total int) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.completed++
	if wp.progress != nil {
		wp.progress(wp.completed, total)
	}
}
