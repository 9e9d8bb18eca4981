package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dupescan/internal/filter"
)

func TestBucketBySize(t *testing.T) {
	root := tempRoot(t)
	a := writeFile(t, filepath.Join(root, "a"), "12345")
	b := writeFile(t, filepath.Join(root, "b"), "abcde")
	c := writeFile(t, filepath.Join(root, "c"), "xyz")

	buckets := BucketBySize([]string{a, b, c, a}, nil, nil)
	require.Len(t, buckets, 2)
	assert.Len(t, buckets[5], 2, "repeated path kept once")
	assert.Equal(t, []FileEntry{{Path: c, Size: 3}}, buckets[3])
}

func TestBucketBySizeMetadataError(t *testing.T) {
	root := tempRoot(t)
	a := writeFile(t, filepath.Join(root, "a"), "12345")
	missing := filepath.Join(root, "gone")

	var errs []error
	buckets := BucketBySize([]string{a, missing}, nil, func(err error) { errs = append(errs, err) })

	require.Len(t, errs, 1)
	assert.True(t, IsKind(errs[0], KindMetadata))
	assert.Equal(t, missing, errorPath(errs[0]))
	assert.Len(t, buckets, 1)
}

func TestBucketBySizeLimits(t *testing.T) {
	root := tempRoot(t)
	small := writeFile(t, filepath.Join(root, "small"), "1")
	mid := writeFile(t, filepath.Join(root, "mid"), "12345")
	big := writeFile(t, filepath.Join(root, "big"), "1234567890")

	chain := filter.NewChain()
	chain.SetMinSize(2)
	chain.SetMaxSize(9)

	buckets := BucketBySize([]string{small, mid, big}, chain, nil)
	assert.Equal(t, SizeBuckets{5: {{Path: mid, Size: 5}}}, buckets)
}

func TestPruneAndCandidates(t *testing.T) {
	buckets := SizeBuckets{
		1:  {{Path: "/one", Size: 1}},
		10: {{Path: "/t2", Size: 10}, {Path: "/t1", Size: 10}},
		50: {{Path: "/f1", Size: 50}, {Path: "/f2", Size: 50}, {Path: "/f3", Size: 50}},
		0:  {{Path: "/e1", Size: 0}, {Path: "/e2", Size: 0}},
	}

	got := buckets.Prune().Candidates()
	assert.NotContains(t, buckets, int64(1))
	assert.Equal(t, []FileEntry{
		{Path: "/f1", Size: 50},
		{Path: "/f2", Size: 50},
		{Path: "/f3", Size: 50},
		{Path: "/t1", Size: 10},
		{Path: "/t2", Size: 10},
		{Path: "/e1", Size: 0},
		{Path: "/e2", Size: 0},
	}, got)
}

func TestCandidatesSkipsSingletonsWithoutPrune(t *testing.T) {
	buckets := SizeBuckets{3: {{Path: "/x", Size: 3}}}
	assert.Empty(t, buckets.Candidates())
}
