package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks scan statistics using lock-free atomic counters. It is
// safe to update from any number of workers.
type Collector struct {
	filesScanned   atomic.Int64
	entriesSkipped atomic.Int64
	metadataFailed atomic.Int64
	candidates     atomic.Int64
	filesHashed    atomic.Int64
	hashFailed     atomic.Int64
	bytesHashed    atomic.Int64
	duplicateFiles atomic.Int64
	groups         atomic.Int64
	wastedBytes    atomic.Int64
	eventsDropped  atomic.Int64
	startTime      time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetCandidates records how many files survived size bucketing.
func (c *Collector) SetCandidates(n int64) { c.candidates.Store(n) }

func (c *Collector) AddFilesScanned(n int64)   { c.filesScanned.Add(n) }
func (c *Collector) AddEntriesSkipped(n int64) { c.entriesSkipped.Add(n) }
func (c *Collector) AddMetadataFailed(n int64) { c.metadataFailed.Add(n) }
func (c *Collector) AddFilesHashed(n int64)    { c.filesHashed.Add(n) }
func (c *Collector) AddHashFailed(n int64)     { c.hashFailed.Add(n) }
func (c *Collector) AddBytesHashed(n int64)    { c.bytesHashed.Add(n) }
func (c *Collector) AddDuplicateFiles(n int64) { c.duplicateFiles.Add(n) }

// AddEventsDropped counts events not delivered because the consumer was behind.
func (c *Collector) AddEventsDropped(n int64) { c.eventsDropped.Add(n) }

// AddGroup records one duplicate group and the bytes its extra copies waste.
func (c *Collector) AddGroup(wasted int64) {
	c.groups.Add(1)
	c.wastedBytes.Add(wasted)
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesScanned   int64
	EntriesSkipped int64
	MetadataFailed int64
	Candidates     int64
	FilesHashed    int64
	HashFailed     int64
	BytesHashed    int64
	DuplicateFiles int64
	Groups         int64
	WastedBytes    int64
	EventsDropped  int64
	Elapsed        time.Duration
}

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesScanned:   c.filesScanned.Load(),
		EntriesSkipped: c.entriesSkipped.Load(),
		MetadataFailed: c.metadataFailed.Load(),
		Candidates:     c.candidates.Load(),
		FilesHashed:    c.filesHashed.Load(),
		HashFailed:     c.hashFailed.Load(),
		BytesHashed:    c.bytesHashed.Load(),
		DuplicateFiles: c.duplicateFiles.Load(),
		Groups:         c.groups.Load(),
		WastedBytes:    c.wastedBytes.Load(),
		EventsDropped:  c.eventsDropped.Load(),
		Elapsed:        c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Skipped is the number of files or entries dropped by soft failures.
func (s Snapshot) Skipped() int64 {
	return s.EntriesSkipped + s.MetadataFailed + s.HashFailed
}

// HashRate is the average hashing throughput in bytes per second.
func (s Snapshot) HashRate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.BytesHashed) / s.Elapsed.Seconds()
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"scanned=%d candidates=%d hashed=%d bytes=%d duplicates=%d groups=%d wasted=%d skipped=%d",
		s.FilesScanned, s.Candidates, s.FilesHashed, s.BytesHashed,
		s.DuplicateFiles, s.Groups, s.WastedBytes, s.Skipped(),
	)
}
