package engine

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bamsammich/dupescan/internal/event"
	"github.com/bamsammich/dupescan/internal/filter"
	"github.com/bamsammich/dupescan/internal/stats"
)

// Config describes a duplicate scan over two directory roots.
type Config struct {
	RootA       string
	RootB       string
	Workers     int // hashing workers; 0 means runtime.NumCPU()
	ScanWorkers int
	Algorithm   Algorithm
	Filter      *filter.Chain
	Progress    ProgressFunc
	Events      chan<- event.Event // optional; sends never block
	Stats       *stats.Collector
}

// Result is the outcome of a scan.
type Result struct {
	// Fingerprints maps every hashed fingerprint to the paths that produced
	// it, including fingerprints with a single path.
	Fingerprints map[Fingerprint][]string
	// Groups holds only fingerprints with two or more paths.
	Groups []DuplicateGroup
	Stats  stats.Snapshot
	Err    error
}

// FindDuplicates scans rootA and rootB with default settings and returns the
// fingerprint-to-paths mapping.
func FindDuplicates(ctx context.Context, rootA, rootB string, onProgress ProgressFunc) (map[Fingerprint][]string, error) {
	res := Run(ctx, Config{RootA: rootA, RootB: rootB, Progress: onProgress})
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Fingerprints, nil
}

// Run executes the pipeline, blocking until complete. Only root resolution
// failures and cancellation produce Err; per-file failures are counted in
// Stats and reported on Events.
func Run(ctx context.Context, cfg Config) Result {
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}
	progress := cfg.Progress
	if progress == nil {
		progress = noProgress
	}
	algo := cfg.Algorithm
	if algo == "" {
		algo = SHA256
	}

	roots, err := PlanRoots(cfg.RootA, cfg.RootB)
	if err != nil {
		return Result{Err: err, Stats: collector.Snapshot()}
	}

	paths := scan(ctx, roots, cfg, collector, progress)
	if err := ctx.Err(); err != nil {
		return Result{Err: err, Stats: collector.Snapshot()}
	}
	emit(cfg.Events, collector, event.Event{Type: event.ScanComplete, Total: int64(len(paths))})

	buckets := BucketBySize(paths, cfg.Filter, func(err error) {
		collector.AddMetadataFailed(1)
		emit(cfg.Events, collector, event.Event{Type: event.MetadataFailed, Path: errorPath(err), Error: err})
	})
	candidates := buckets.Prune().Candidates()
	collector.SetCandidates(int64(len(candidates)))

	entries, err := Aggregate(ctx, candidates, AggregateConfig{
		Workers:   cfg.Workers,
		Algorithm: algo,
		Progress:  progress,
		Events:    cfg.Events,
		Stats:     collector,
	})
	if err != nil {
		return Result{Err: fmt.Errorf("hash candidates: %w", err), Stats: collector.Snapshot()}
	}

	groups := Groups(entries)
	for _, g := range groups {
		collector.AddGroup(g.Wasted())
	}
	emit(cfg.Events, collector, event.Event{Type: event.HashComplete, Total: int64(len(candidates))})

	return Result{
		Fingerprints: pathsOf(entries),
		Groups:       groups,
		Stats:        collector.Snapshot(),
	}
}

// scan walks roots and returns every regular file path, ticking progress once
// per file. Per-entry errors are counted and forwarded.
func scan(ctx context.Context, roots []string, cfg Config, collector *stats.Collector, progress ProgressFunc) []string {
	scanner := NewScanner(ScannerConfig{
		Roots:   roots,
		Workers: cfg.ScanWorkers,
		Filter:  cfg.Filter,
	})
	files, errs := scanner.Scan(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range errs {
			collector.AddEntriesSkipped(1)
			emit(cfg.Events, collector, event.Event{Type: event.EntrySkipped, Path: errorPath(err), Error: err})
		}
	}()

	var paths []string
	for path := range files {
		paths = append(paths, path)
		collector.AddFilesScanned(1)
		progress(len(paths), 0, 0, StageScanning)
	}
	wg.Wait()

	return paths
}

// Groups turns a fingerprint mapping into duplicate groups: only
// fingerprints with two or more files, paths sorted, largest waste first.
func Groups(entries map[Fingerprint][]FileEntry) []DuplicateGroup {
	groups := make([]DuplicateGroup, 0)
	for fp, files := range entries {
		if len(files) < 2 {
			continue
		}
		g := DuplicateGroup{Hash: fp, Size: files[0].Size, Files: make([]string, len(files))}
		for i, f := range files {
			g.Files[i] = f.Path
		}
		slices.Sort(g.Files)
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(l, r DuplicateGroup) int {
		if c := cmp.Compare(r.Wasted(), l.Wasted()); c != 0 {
			return c
		}
		return cmp.Compare(l.Hash, r.Hash)
	})
	return groups
}

func pathsOf(entries map[Fingerprint][]FileEntry) map[Fingerprint][]string {
	out := make(map[Fingerprint][]string, len(entries))
	for fp, files := range entries {
		paths := make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Path
		}
		out[fp] = paths
	}
	return out
}

// emit delivers ev without blocking. An event a slow consumer has no room
// for is counted as dropped; the other counters in stats.Collector stay exact.
func emit(ch chan<- event.Event, collector *stats.Collector, ev event.Event) {
	if ch == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case ch <- ev:
	default:
		collector.AddEventsDropped(1)
	}
}
