package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dupescan.rules")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileRules(t *testing.T) {
	path := writeRules(t, `# keep photos even inside caches
+ *.jpg
- .cache/

node_modules/
-   *.tmp
`)

	c := NewChain()
	require.NoError(t, c.LoadFile(path))
	require.Len(t, c.rules, 4)
	assert.True(t, c.rules[0].Include)
	for _, r := range c.rules[1:] {
		assert.False(t, r.Include, r.Pattern.String())
	}
	assert.Equal(t, "*.tmp", c.rules[3].Pattern.String())

	assert.True(t, c.MatchPath("photos/cat.jpg", false))
	assert.False(t, c.MatchPath("home/.cache", true))
	assert.False(t, c.MatchPath("web/node_modules", true))
	assert.False(t, c.MatchPath("scratch/build.tmp", false))
	assert.True(t, c.MatchPath("docs/readme.md", false))
}

func TestLoadFileAppendsToExistingRules(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddInclude("keep.tmp"))
	require.NoError(t, c.LoadFile(writeRules(t, "*.tmp\n")))

	assert.True(t, c.MatchPath("keep.tmp", false))
	assert.False(t, c.MatchPath("drop.tmp", false))
}

func TestLoadFileOnlyComments(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.LoadFile(writeRules(t, "# nothing\n\n   \n# here\n")))
	assert.True(t, c.Empty())
}

func TestLoadFileMissing(t *testing.T) {
	err := NewChain().LoadFile(filepath.Join(t.TempDir(), "absent.rules"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open filter file")
}

func TestLoadFileBadPatternReportsLine(t *testing.T) {
	err := NewChain().LoadFile(writeRules(t, "*.log\n+ [z-a].txt\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
