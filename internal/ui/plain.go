package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bamsammich/dupescan/internal/engine"
)

// plainPresenter writes one progress line per stage change, per interval,
// and when a stage completes. Suited to logs and pipes.
type plainPresenter struct {
	w        io.Writer
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	stage string
	last  time.Time
	done  int
}

func (p *plainPresenter) Update(done, total, duplicates int, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if done < p.done && stage == p.stage {
		return
	}
	p.done = done

	now := p.now()
	complete := total > 0 && done >= total
	if stage == p.stage && !complete && now.Sub(p.last) < p.interval {
		return
	}
	p.stage = stage
	p.last = now

	fmt.Fprintln(p.w, progressLine(done, total, duplicates, stage))
}

func (p *plainPresenter) Finish() {}

func progressLine(done, total, duplicates int, stage string) string {
	if stage == engine.StageScanning || total <= 0 {
		return fmt.Sprintf("scanning: %s files found", FormatCount(int64(done)))
	}
	return fmt.Sprintf("processing: %d%%  %s/%s files  %s duplicates",
		Percent(done, total),
		FormatCount(int64(done)),
		FormatCount(int64(total)),
		FormatCount(int64(duplicates)),
	)
}
