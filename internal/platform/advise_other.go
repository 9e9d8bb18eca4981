//go:build !linux

package platform

import "os"

// adviseSequential is a no-op where posix_fadvise is unavailable.
func adviseSequential(_ *os.File) {}
