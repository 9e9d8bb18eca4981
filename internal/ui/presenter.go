package ui

import (
	"io"
	"time"
)

// Presenter renders scan progress. Update is safe to call from multiple
// goroutines.
type Presenter interface {
	// Update reports done units of total for stage; total is 0 while the
	// amount of work is unknown.
	Update(done, total, duplicates int, stage string)
	// Finish flushes and clears any live output.
	Finish()
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	IsTTY      bool
	Quiet      bool
	NoProgress bool
	Width      int
	// Interval is the minimum gap between plain progress lines.
	Interval time.Duration
}

// NewPresenter picks a presenter for the output: nothing when quiet, an
// animated bar on a terminal, periodic lines otherwise.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet || cfg.Writer == nil {
		return quietPresenter{}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		interval := cfg.Interval
		if interval <= 0 {
			interval = 5 * time.Second
		}
		return &plainPresenter{w: cfg.Writer, interval: interval, now: time.Now}
	}
	return &barPresenter{w: cfg.Writer, width: cfg.Width}
}
