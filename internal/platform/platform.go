// Package platform holds OS-specific read hints for the hasher.
package platform

import "os"

// AdviseSequential tells the kernel f will be read front to back once, so it
// can read ahead aggressively and drop pages behind the reader. It is
// advisory and never fails.
func AdviseSequential(f *os.File) {
	adviseSequential(f)
}
