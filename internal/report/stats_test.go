package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carvision/yolokit/internal/fsutil"
)

func testLabels(t *testing.T) *fsutil.MemoryFileSystem {
	t.Helper()
	mfs := fsutil.NewMemoryFileSystem()
	files := map[string]string{
		"/labels/a.txt":      "0 0.5 0.5 0.1 0.1\n1 0.2 0.2 0.1 0.1\n",
		"/labels/b.txt":      "0 0.3 0.3 0.1 0.1\nbroken\n",
		"/labels/c.txt":      "",
		"/labels/notes.json": "{}",
	}
	for path, body := range files {
		require.NoError(t, mfs.WriteFile(path, []byte(body), 0644))
	}
	return mfs
}

func TestCollect(t *testing.T) {
	s, err := Collect(testLabels(t), "/labels")
	require.NoError(t, err)

	assert.Equal(t, 3, s.Files, "only .txt files count")
	assert.Equal(t, map[int]int{0: 2, 1: 1}, s.ClassCounts)
	assert.Equal(t, 3, s.TotalAnnotations())
	assert.Equal(t, 1, s.BadLines)
	assert.InDelta(t, 1.0, s.MeanPerImage(), 1e-9)
	assert.InDelta(t, 1.0, s.MedianPerImage(), 1e-9)
}

func TestCollect_MissingDir(t *testing.T) {
	_, err := Collect(fsutil.NewMemoryFileSystem(), "/absent")
	require.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	s, err := Collect(testLabels(t), "/labels")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, s, map[int]string{0: "bumper"}))

	html := buf.String()
	assert.True(t, strings.Contains(html, "bumper"), "named class appears in chart")
	assert.True(t, strings.Contains(html, "class 1"), "unnamed class falls back to its ID")
}

func TestStats_EmptyDistribution(t *testing.T) {
	s := &Stats{ClassCounts: map[int]int{}}
	assert.Zero(t, s.MeanPerImage())
	assert.Zero(t, s.MedianPerImage())
}
