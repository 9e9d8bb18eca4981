package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// barPresenter draws a spinner while the total is unknown and a bar once it
// is. A new stage replaces the current bar.
type barPresenter struct {
	w     io.Writer
	width int

	mu         sync.Mutex
	bar        *progressbar.ProgressBar
	stage      string
	total      int
	done       int
	duplicates int
}

func (p *barPresenter) Update(done, total, duplicates int, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil || stage != p.stage || total != p.total {
		p.reset(total, stage)
	}
	if duplicates != p.duplicates {
		p.duplicates = duplicates
		p.bar.Describe(p.describe())
	}
	// Workers tick concurrently; a late lower count must not move the bar back.
	if done > p.done {
		p.done = done
		_ = p.bar.Set(done)
	}
}

func (p *barPresenter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func (p *barPresenter) reset(total int, stage string) {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
	p.stage = stage
	p.total = total
	p.done = 0
	p.duplicates = 0

	limit := total
	if limit <= 0 {
		limit = -1
	}
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(p.describe()),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65 * time.Millisecond),
		progressbar.OptionClearOnFinish(),
	}
	if limit < 0 {
		opts = append(opts, progressbar.OptionSpinnerType(14))
	}
	if p.width > 0 {
		opts = append(opts, progressbar.OptionSetWidth(barWidth(p.width)))
	}
	p.bar = progressbar.NewOptions(limit, opts...)
}

func (p *barPresenter) describe() string {
	if p.total <= 0 {
		return p.stage
	}
	return fmt.Sprintf("%s (%s duplicates)", p.stage, FormatCount(int64(p.duplicates)))
}

// barWidth leaves room for the description and counters on one line.
func barWidth(termWidth int) int {
	return max(min(termWidth-70, 40), 10)
}
