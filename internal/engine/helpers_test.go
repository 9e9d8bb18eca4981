package engine

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// tempRoot returns a fresh directory with symlinks resolved, so paths
// compare equal to what the planner produces.
func tempRoot(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// createTestTree populates root with:
//
//	a.txt             "alpha content"
//	copy-of-a.txt     "alpha content"
//	b.txt             "bravo!"
//	sub/deep/a2.txt   "alpha content"
//	sub/c.txt         "charlie"
//	link.txt          -> a.txt (symlink)
func createTestTree(t *testing.T, root string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha content")
	writeFile(t, filepath.Join(root, "copy-of-a.txt"), "alpha content")
	writeFile(t, filepath.Join(root, "b.txt"), "bravo!")
	writeFile(t, filepath.Join(root, "sub", "deep", "a2.txt"), "alpha content")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "charlie")
	require.NoError(t, os.Symlink("a.txt", filepath.Join(root, "link.txt")))
}

// groupSets renders groups as sorted, newline-joined path sets so results
// can be compared without regard to order.
func groupSets(groups []DuplicateGroup) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		files := slices.Clone(g.Files)
		sort.Strings(files)
		out = append(out, strings.Join(files, "\n"))
	}
	sort.Strings(out)
	return out
}

// mappingSets does the same for a raw fingerprint mapping, keeping only
// entries with two or more paths.
func mappingSets(m map[Fingerprint][]string) []string {
	out := make([]string, 0, len(m))
	for _, paths := range m {
		if len(paths) < 2 {
			continue
		}
		files := slices.Clone(paths)
		sort.Strings(files)
		out = append(out, strings.Join(files, "\n"))
	}
	sort.Strings(out)
	return out
}
