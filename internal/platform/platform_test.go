package platform

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviseSequentialLeavesFileReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("sequential"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	AdviseSequential(f)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "sequential", string(data))
}

func TestAdviseSequentialClosedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.NotPanics(t, func() { AdviseSequential(f) })
}
