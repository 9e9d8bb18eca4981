package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bamsammich/dupescan/internal/event"
	"github.com/bamsammich/dupescan/internal/stats"
)

// AggregateConfig controls the hashing worker pool.
type AggregateConfig struct {
	Workers   int
	Algorithm Algorithm
	Progress  ProgressFunc
	Events    chan<- event.Event
	Stats     *stats.Collector
}

type partialMap = map[Fingerprint][]FileEntry

// Aggregate hashes candidates in parallel and returns every fingerprint with
// the files that produced it. Each worker folds into a private map; the
// partial maps are merged once all workers are done. Files that fail to hash
// are dropped. Every candidate yields exactly one progress tick.
//
// A cancelled ctx stops feeding work and returns ctx.Err() with whatever was
// hashed so far.
func Aggregate(ctx context.Context, candidates []FileEntry, cfg AggregateConfig) (map[Fingerprint][]FileEntry, error) {
	progress := cfg.Progress
	if progress == nil {
		progress = noProgress
	}
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(min(workers, len(candidates)), 1)

	total := len(candidates)
	jobs := make(chan FileEntry, workers*2)
	partials := make([]partialMap, workers)

	var (
		done atomic.Int64
		dups atomic.Int64
		seen sync.Map // Fingerprint -> struct{}; counts only, never the result
		wg   sync.WaitGroup
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hasher := NewHasher(cfg.Algorithm)
			local := make(partialMap)

			for entry := range jobs {
				if fp, err := hasher.Hash(ctx, entry.Path); err != nil {
					if ctx.Err() == nil {
						collector.AddHashFailed(1)
						emit(cfg.Events, collector, event.Event{Type: event.HashFailed, Path: entry.Path, Size: entry.Size, Error: err})
					}
				} else {
					local[fp] = append(local[fp], entry)
					collector.AddFilesHashed(1)
					collector.AddBytesHashed(entry.Size)
					if _, loaded := seen.LoadOrStore(fp, struct{}{}); loaded {
						dups.Add(1)
						collector.AddDuplicateFiles(1)
					}
				}
				progress(int(done.Add(1)), total, int(dups.Load()), StageProcessing)
			}
			partials[i] = local
		}()
	}

feed:
	for _, entry := range candidates {
		select {
		case jobs <- entry:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return reduce(partials), ctx.Err()
}

// reduce merges partial maps pairwise until one remains.
func reduce(parts []partialMap) partialMap {
	if len(parts) == 0 {
		return make(partialMap)
	}
	for len(parts) > 1 {
		next := make([]partialMap, 0, (len(parts)+1)/2)
		for i := 0; i < len(parts); i += 2 {
			if i+1 < len(parts) {
				next = append(next, merge(parts[i], parts[i+1]))
			} else {
				next = append(next, parts[i])
			}
		}
		parts = next
	}
	if parts[0] == nil {
		return make(partialMap)
	}
	return parts[0]
}

// merge is a disjoint-key union that appends on collision. The result is the
// same set of groups whichever argument comes first; only list order differs.
// Either argument may be reused as the result.
func merge(a, b partialMap) partialMap {
	if len(a) < len(b) {
		a, b = b, a
	}
	if a == nil {
		a = make(partialMap)
	}
	for fp, entries := range b {
		a[fp] = append(a[fp], entries...)
	}
	return a
}
