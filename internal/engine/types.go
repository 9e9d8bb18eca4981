package engine

// Fingerprint is the hex-encoded digest of a file's full content.
type Fingerprint string

// FileEntry is a regular file discovered during a run: its canonical path
// and its byte length at the time it was stat'd.
type FileEntry struct {
	Path string
	Size int64
}

// DuplicateGroup is a set of files that share one fingerprint, and
// therefore one size.
type DuplicateGroup struct {
	Hash  Fingerprint `json:"hash"`
	Size  int64       `json:"size"`
	Files []string    `json:"files"`
}

// Wasted returns the bytes reclaimable by keeping exactly one copy.
func (g DuplicateGroup) Wasted() int64 {
	if len(g.Files) < 2 {
		return 0
	}
	return g.Size * int64(len(g.Files)-1)
}

// Progress stage labels.
const (
	StageScanning   = "Scanning directories"
	StageProcessing = "Processing files"
)

// ProgressFunc receives progress ticks. total == 0 means the scan phase is
// running and done is the cumulative count of files found so far; total > 0
// means done of total candidates have been hashed. duplicates is the running
// count of files whose content was already seen.
//
// It is invoked concurrently from hashing workers and must do its own
// synchronization.
type ProgressFunc func(done, total, duplicates int, stage string)

func noProgress(int, int, int, string) {}
