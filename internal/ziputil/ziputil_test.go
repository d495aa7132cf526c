package ziputil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestFindZips(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested", "deeper"), 0755))
	writeZip(t, filepath.Join(root, "a.zip"), map[string]string{"x": "1"})
	writeZip(t, filepath.Join(root, "nested", "deeper", "b.zip"), map[string]string{"y": "2"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "not-a-zip.txt"), []byte("no"), 0644))

	zips, err := FindZips(root)
	require.NoError(t, err)
	assert.Len(t, zips, 2)
}

func TestExtract(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "export.zip")
	writeZip(t, zipPath, map[string]string{
		"data.yaml":             "names:\n  0: bumper\n",
		"labels/train/0001.txt": "0 0.5 0.5 0.1 0.1\n",
	})

	require.NoError(t, Extract(zipPath))

	dest := ExtractDir(zipPath)
	assert.Equal(t, filepath.Join(root, "export"), dest)

	data, err := os.ReadFile(filepath.Join(dest, "labels", "train", "0001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0 0.5 0.5 0.1 0.1\n", string(data))
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "evil.zip")
	writeZip(t, zipPath, map[string]string{"../escape.txt": "nope"})

	err := Extract(zipPath)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr), "escaping entry must not be written")
}

func TestExtract_BadZip(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "corrupt.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("this is not a zip"), 0644))

	require.Error(t, Extract(zipPath))
}
