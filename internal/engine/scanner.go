package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bamsammich/dupescan/internal/filter"
)

// ScannerConfig controls scanner behavior.
type ScannerConfig struct {
	Roots   []string
	Workers int
	Filter  *filter.Chain // nil means include everything
}

// Scanner traverses directory trees in parallel and emits the paths of
// regular files. Symlinks are never followed.
type Scanner struct {
	cfg ScannerConfig
}

// dirWork is a directory queued for reading, with the root it was found under.
type dirWork struct {
	root string
	path string
}

// NewScanner creates a scanner with the given config.
func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = min(runtime.NumCPU(), 8)
	}
	return &Scanner{cfg: cfg}
}

// Scan starts a fresh traversal and returns channels for file paths and
// per-entry errors. Each call is independent. The caller must consume from
// both channels until they close.
func (s *Scanner) Scan(ctx context.Context) (<-chan string, <-chan error) {
	files := make(chan string, s.cfg.Workers*4)
	errs := make(chan error, s.cfg.Workers*4)

	go func() {
		defer close(files)
		defer close(errs)
		s.scanTrees(ctx, files, errs)
	}()

	return files, errs
}

func (s *Scanner) scanTrees(ctx context.Context, files chan<- string, errs chan<- error) {
	queue := make(chan dirWork, s.cfg.Workers*2)
	var outstanding sync.WaitGroup // directories queued but not yet read

	w := &walker{ctx: ctx, filter: s.cfg.Filter, files: files, errs: errs, queue: queue, outstanding: &outstanding}

	var workerWg sync.WaitGroup
	for range s.cfg.Workers {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for dir := range queue {
				w.scanDir(dir)
				outstanding.Done()
			}
		}()
	}

	for _, root := range s.cfg.Roots {
		outstanding.Add(1)
		select {
		case queue <- dirWork{root: root, path: root}:
		case <-ctx.Done():
			outstanding.Done()
		}
	}

	outstanding.Wait()
	close(queue)
	workerWg.Wait()
}

type walker struct {
	ctx         context.Context
	filter      *filter.Chain
	files       chan<- string
	errs        chan<- error
	queue       chan dirWork
	outstanding *sync.WaitGroup
}

func (w *walker) scanDir(dir dirWork) {
	entries, err := os.ReadDir(dir.path)
	if err != nil {
		w.sendErr(&Error{Kind: KindTraversalEntry, Path: dir.path, Err: err})
		// ReadDir returns whatever it read before the failure.
	}

	for _, entry := range entries {
		if w.ctx.Err() != nil {
			return
		}
		w.processEntry(dir, entry)
	}
}

func (w *walker) processEntry(dir dirWork, entry fs.DirEntry) {
	path := filepath.Join(dir.path, entry.Name())
	mode := entry.Type()

	switch {
	case mode&fs.ModeSymlink != 0:
		return

	case mode.IsDir():
		if !w.included(dir.root, path, true) {
			return
		}
		w.outstanding.Add(1)
		sub := dirWork{root: dir.root, path: path}
		select {
		case w.queue <- sub:
		default:
			// Queue full: read it on this worker so every worker blocking on
			// a send can never stall the walk.
			w.scanDir(sub)
			w.outstanding.Done()
		}

	case mode.IsRegular():
		if !w.included(dir.root, path, false) {
			return
		}
		select {
		case w.files <- path:
		case <-w.ctx.Done():
		}

	case mode&fs.ModeIrregular != 0:
		// Type could not be determined from the directory listing.
		w.sendErr(&Error{Kind: KindTraversalEntry, Path: path, Err: fs.ErrInvalid})
	}
}

func (w *walker) included(root, path string, isDir bool) bool {
	if w.filter == nil {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return true
	}
	return w.filter.MatchPath(filepath.ToSlash(rel), isDir)
}

func (w *walker) sendErr(err error) {
	select {
	case w.errs <- err:
	case <-w.ctx.Done():
	}
}
