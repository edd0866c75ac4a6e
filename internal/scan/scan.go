// Package scan fans a worker out over a set of archives on a bounded pool
// and hands results back in original archive order.
package scan

import (
	"runtime"
	"sync"

	"takeout/internal/archive"
)

// ProgressFunc receives (completed, total) once per finished archive.
// Completed counts are monotonically increasing and reach total exactly once;
// no ordering relative to archive identity is implied.
type ProgressFunc func(completed, total int)

// Result pairs one archive with its worker outcome. Err is set only for that
// archive; other archives are unaffected.
type Result[T any] struct {
	Archive archive.Handle
	Value   T
	Err     error
}

// Options tunes a Map call.
type Options struct {
	// MaxWorkers caps the pool size. Zero means no explicit cap.
	MaxWorkers int
	Progress   ProgressFunc
}

// PoolSize computes the degree of parallelism for n archives:
// min(cap, 2×GOMAXPROCS, n), never zero, never unbounded.
func PoolSize(n, maxWorkers int) int {
	size := 2 * runtime.GOMAXPROCS(0)
	if maxWorkers > 0 && maxWorkers < size {
		size = maxWorkers
	}
	if n < size {
		size = n
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Map runs worker over every archive exactly once and returns one result per
// archive, slotted by original index so output order always matches input
// order regardless of completion order.
func Map[T any](archives []archive.Handle, worker func(archive.Handle) (T, error), opts Options) []Result[T] {
	total := len(archives)
	if total == 0 {
		return nil
	}

	results := make([]Result[T], total)
	indexes := make(chan int)

	// The count is advanced under the same lock that fires the callback so
	// observers always see a strictly increasing sequence.
	var progressMu sync.Mutex
	completed := 0
	report := func() {
		if opts.Progress == nil {
			return
		}
		progressMu.Lock()
		completed++
		opts.Progress(completed, total)
		progressMu.Unlock()
	}

	var wg sync.WaitGroup
	for range PoolSize(total, opts.MaxWorkers) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				value, err := worker(archives[i])
				results[i] = Result[T]{Archive: archives[i], Value: value, Err: err}
				report()
			}
		}()
	}

	for i := range archives {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
