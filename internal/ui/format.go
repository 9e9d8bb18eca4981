package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bamsammich/dupescan/internal/report"
)

// FormatRate formats a bytes-per-second rate using report size units.
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec <= 0 {
		return "0 bytes/s"
	}
	return report.FormatSize(int64(bytesPerSec)) + "/s"
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	digits := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Percent returns done/total as a whole percentage, 0 when total is unknown.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return min(done*100/total, 100)
}
