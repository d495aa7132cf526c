package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 64, 64))))
}

func setupVisualiserDirs(t *testing.T, n int) (imagesDir, labelsDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	imagesDir = filepath.Join(root, "images")
	labelsDir = filepath.Join(root, "labels")
	outDir = filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(imagesDir, 0755))
	require.NoError(t, os.MkdirAll(labelsDir, 0755))

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("img%02d", i)
		writeTestPNG(t, filepath.Join(imagesDir, name+".png"))
		labels := "0 0.5 0.5 0.25 0.25\n"
		require.NoError(t, os.WriteFile(filepath.Join(labelsDir, name+".txt"), []byte(labels), 0644))
	}
	return imagesDir, labelsDir, outDir
}

func TestVisualiser_Run(t *testing.T) {
	imagesDir, labelsDir, outDir := setupVisualiserDirs(t, 3)
	r := testRenderer(t, map[int]string{0: "bumper"}, 0.4)
	v := &Visualiser{Renderer: r, Logf: t.Logf}

	sum, err := v.Run(imagesDir, labelsDir, outDir, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Processed)
	assert.Equal(t, 3, sum.Annotations)
	assert.Equal(t, 0, sum.Failed)

	for i := 0; i < 3; i++ {
		out := filepath.Join(outDir, fmt.Sprintf("img%02d.png", i))
		_, err := os.Stat(out)
		assert.NoError(t, err, "expected output %s", out)
	}
}

func TestVisualiser_Limit(t *testing.T) {
	imagesDir, labelsDir, outDir := setupVisualiserDirs(t, 5)
	r := testRenderer(t, map[int]string{0: "bumper"}, 0.4)
	v := &Visualiser{Renderer: r, Logf: t.Logf}

	sum, err := v.Run(imagesDir, labelsDir, outDir, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Processed, "limit must cap the number of images")
}

func TestVisualiser_MalformedLineSkipped(t *testing.T) {
	imagesDir, labelsDir, outDir := setupVisualiserDirs(t, 1)
	labels := "0 0.5 0.5 0.25 0.25\nbroken line here\n0 0.2 0.2 0.1 0.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(labelsDir, "img00.txt"), []byte(labels), 0644))

	r := testRenderer(t, map[int]string{0: "bumper"}, 0.4)
	v := &Visualiser{Renderer: r, Logf: t.Logf}

	sum, err := v.Run(imagesDir, labelsDir, outDir, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 2, sum.Annotations, "valid records around a bad line still render")
	assert.Equal(t, 1, sum.BadLines)
}

func TestVisualiser_UnknownClassLoggedAndCounted(t *testing.T) {
	imagesDir, labelsDir, outDir := setupVisualiserDirs(t, 1)
	labels := "0 0.5 0.5 0.25 0.25\n7 0.2 0.2 0.1 0.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(labelsDir, "img00.txt"), []byte(labels), 0644))

	r := testRenderer(t, map[int]string{0: "bumper"}, 0.4)
	var warned bool
	v := &Visualiser{Renderer: r, Logf: func(format string, args ...any) {
		t.Logf(format, args...)
		if strings.Contains(fmt.Sprintf(format, args...), "class 7") {
			warned = true
		}
	}}

	sum, err := v.Run(imagesDir, labelsDir, outDir, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 1, sum.Annotations, "known classes still render")
	assert.Equal(t, 1, sum.UnknownClasses)
	assert.True(t, warned, "unknown class must be logged")
}

func TestVisualiser_MissingLabelFile(t *testing.T) {
	imagesDir, labelsDir, outDir := setupVisualiserDirs(t, 1)
	require.NoError(t, os.Remove(filepath.Join(labelsDir, "img00.txt")))

	r := testRenderer(t, map[int]string{0: "bumper"}, 0.4)
	v := &Visualiser{Renderer: r, Logf: t.Logf}

	sum, err := v.Run(imagesDir, labelsDir, outDir, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 0, sum.Annotations)
}

func TestVisualiser_MissingImagesDir(t *testing.T) {
	r := testRenderer(t, map[int]string{0: "bumper"}, 0.4)
	v := &Visualiser{Renderer: r, Logf: t.Logf}

	_, err := v.Run("/no/such/dir", "/labels", t.TempDir(), 0)
	require.Error(t, err)
}

func TestListImages_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.png", "notes.txt", "c.JPEG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	names, err := ListImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.jpg", "c.JPEG"}, names)
}
