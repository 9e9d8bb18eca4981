package ui

import (
	"fmt"

	"github.com/bamsammich/dupescan/internal/report"
	"github.com/bamsammich/dupescan/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 48,917  hashed 1,204 (2.10 GB)  rate 10.91 MB/s  groups 12  wasted 3.40 MB  time 3m 17s  skipped 0
func CompletionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.Skipped() > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  files %s  hashed %s (%s)  rate %s  groups %s  wasted %s  time %s  skipped %d",
		icon,
		FormatCount(snap.FilesScanned),
		FormatCount(snap.FilesHashed),
		report.FormatSize(snap.BytesHashed),
		FormatRate(snap.HashRate()),
		FormatCount(snap.Groups),
		report.FormatSize(snap.WastedBytes),
		FormatDuration(snap.Elapsed),
		snap.Skipped(),
	)
}
