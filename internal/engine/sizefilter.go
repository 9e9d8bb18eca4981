package engine

import (
	"cmp"
	"os"
	"slices"

	"github.com/bamsammich/dupescan/internal/filter"
)

// SizeBuckets maps a byte length to the files of exactly that length.
type SizeBuckets map[int64][]FileEntry

// BucketBySize stats every path and groups the results by size. A path that
// cannot be stat'd is reported to onErr and dropped. Repeated paths are kept
// once. Files outside the chain's size limits are dropped silently.
func BucketBySize(paths []string, chain *filter.Chain, onErr func(error)) SizeBuckets {
	buckets := make(SizeBuckets)
	seen := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		info, err := os.Lstat(path)
		if err != nil {
			if onErr != nil {
				onErr(&Error{Kind: KindMetadata, Path: path, Err: err})
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if chain != nil && !chain.MatchSize(info.Size()) {
			continue
		}

		buckets[info.Size()] = append(buckets[info.Size()], FileEntry{Path: path, Size: info.Size()})
	}

	return buckets
}

// Prune drops every bucket with fewer than two members; those files cannot
// match anything.
func (b SizeBuckets) Prune() SizeBuckets {
	for size, entries := range b {
		if len(entries) < 2 {
			delete(b, size)
		}
	}
	return b
}

// Candidates flattens the surviving buckets, largest files first so the
// longest hashes start early.
func (b SizeBuckets) Candidates() []FileEntry {
	var out []FileEntry
	for _, entries := range b {
		if len(entries) < 2 {
			continue
		}
		out = append(out, entries...)
	}
	slices.SortFunc(out, func(l, r FileEntry) int {
		if c := cmp.Compare(r.Size, l.Size); c != 0 {
			return c
		}
		return cmp.Compare(l.Path, r.Path)
	})
	return out
}
