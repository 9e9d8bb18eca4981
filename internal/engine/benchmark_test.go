package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createBenchTree writes dirs×files small unique files under root, then
// overwrites two of them with copies of dir_0/file_0.txt.
func createBenchTree(tb testing.TB, root string, dirs, files int) {
	tb.Helper()
	for i := range dirs {
		dir := filepath.Join(root, fmt.Sprintf("dir_%d", i))
		require.NoError(tb, os.MkdirAll(dir, 0o755))
		for j := range files {
			content := fmt.Sprintf("Content for file %d in dir %d\n", j, i)
			require.NoError(tb, os.WriteFile(filepath.Join(dir, fmt.Sprintf("file_%d.txt", j)), []byte(content), 0o644))
		}
	}

	original, err := os.ReadFile(filepath.Join(root, "dir_0", "file_0.txt"))
	require.NoError(tb, err)
	last := fmt.Sprintf("dir_%d", dirs-1)
	for _, dst := range []string{
		filepath.Join(root, "dir_1", fmt.Sprintf("file_%d.txt", files/2)),
		filepath.Join(root, last, fmt.Sprintf("file_%d.txt", files-1)),
	} {
		require.NoError(tb, os.WriteFile(dst, original, 0o644))
	}
}

func TestPlantedDuplicatesInLargeTree(t *testing.T) {
	root := tempRoot(t)
	createBenchTree(t, root, 20, 20)

	res := runEngine(t, root, root)
	require.Len(t, res.Groups, 1)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "dir_0", "file_0.txt"),
		filepath.Join(root, "dir_1", "file_10.txt"),
		filepath.Join(root, "dir_19", "file_19.txt"),
	}, res.Groups[0].Files)
	assert.Equal(t, int64(400), res.Stats.FilesScanned)
}

func BenchmarkFindDuplicates(b *testing.B) {
	root, err := filepath.EvalSymlinks(b.TempDir())
	require.NoError(b, err)
	createBenchTree(b, root, 100, 100)

	ctx := context.Background()
	for b.Loop() {
		if _, err := FindDuplicates(ctx, root, root, nil); err != nil {
			b.Fatal(err)
		}
	}
}
