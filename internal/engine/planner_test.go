package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRoots(t *testing.T) {
	base := tempRoot(t)
	a := filepath.Join(base, "a")
	ab := filepath.Join(base, "a", "b")
	abc := filepath.Join(base, "a", "bc")
	other := filepath.Join(base, "other")
	for _, d := range []string{ab, abc, other} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}

	tests := []struct {
		name string
		a, b string
		want []string
	}{
		{"equal", a, a, []string{a}},
		{"equal after cleaning", a, a + "/./b/..", []string{a}},
		{"b inside a", a, ab, []string{a}},
		{"a inside b", ab, a, []string{a}},
		{"siblings", a, other, []string{a, other}},
		{"shared name prefix is not nesting", ab, abc, []string{ab, abc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanRoots(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanRootsRelative(t *testing.T) {
	base := tempRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "x"), 0o755))
	t.Chdir(base)

	got, err := PlanRoots("x", ".")
	require.NoError(t, err)
	assert.Equal(t, []string{base}, got)
}

func TestPlanRootsSymlinkedRoot(t *testing.T) {
	base := tempRoot(t)
	realDir := filepath.Join(base, "real")
	require.NoError(t, os.MkdirAll(realDir, 0o755))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(realDir, link))

	got, err := PlanRoots(link, realDir)
	require.NoError(t, err)
	assert.Equal(t, []string{realDir}, got, "a symlink to a root is the same root")
}

func TestPlanRootsErrors(t *testing.T) {
	base := tempRoot(t)
	file := writeFile(t, filepath.Join(base, "file.txt"), "x")
	missing := filepath.Join(base, "missing")

	for name, args := range map[string][2]string{
		"missing first":  {missing, base},
		"missing second": {base, missing},
		"file root":      {base, file},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := PlanRoots(args[0], args[1])
			require.Error(t, err)
			assert.True(t, IsKind(err, KindPathResolution))

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.True(t, e.Fatal())
			assert.NotEmpty(t, e.Path)
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, contains("/a", "/a"))
	assert.True(t, contains("/a", "/a/b"))
	assert.True(t, contains("/a", "/a/..b"))
	assert.False(t, contains("/a/b", "/a/bc"))
	assert.False(t, contains("/a/b", "/a"))
	assert.False(t, contains("/a", "/x"))
}
