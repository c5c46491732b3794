package planfile

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/horizon/internal/model"
)

// LoadResult is one parsed plan document from LoadDir.
type LoadResult struct {
	File DiscoveredFile
	Plan model.Plan
	Err  error
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// LoadDir discovers and parses every plan document under dir using a bounded
// worker pool. Results keep ScanDir's order; a file that fails to parse is
// reported in its result rather than aborting the load.
func LoadDir(dir string, progressFn ProgressFunc) ([]LoadResult, error) {
	files, err := ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	numWorkers := min(max(runtime.GOMAXPROCS(0), 1), len(files))

	work := make(chan int, len(files))
	results := make([]LoadResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for idx := range work {
				plan, err := ReadFile(files[idx].Path)
				results[idx] = LoadResult{File: files[idx], Plan: plan, Err: err}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()
	return results, nil
}
