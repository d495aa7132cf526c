package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_Rename(t *testing.T) {
	fs := OSFileSystem{}
	dir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	if err := fs.WriteFile(src, []byte("payload"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.Rename(src, dst); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	if fs.Exists(src) {
		t.Error("expected source to be gone after rename")
	}
	data, err := fs.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("expected 'payload', got %q", data)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	testData := []byte("hello, world")
	err := mfs.WriteFile("/test.txt", testData, 0644)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := mfs.ReadFile("/test.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestMemoryFileSystem_Rename(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/images/train/001.jpg", []byte("img"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := mfs.Rename("/images/train/001.jpg", "/images/val/001.jpg"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	if mfs.Exists("/images/train/001.jpg") {
		t.Error("expected source to be gone after rename")
	}
	if !mfs.Exists("/images/val/001.jpg") {
		t.Error("expected destination to exist after rename")
	}
}

func TestMemoryFileSystem_RenameMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.Rename("/no/such/file", "/dst"); err == nil {
		t.Error("expected error renaming missing file")
	}
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem()

	files := []string{"/labels/train/b.txt", "/labels/train/a.txt", "/labels/train/c.txt"}
	for _, f := range files {
		if err := mfs.WriteFile(f, []byte("0 0.5 0.5 0.1 0.1"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	if err := mfs.MkdirAll("/labels/train/nested", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	entries, err := mfs.ReadDir("/labels/train")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt", "nested"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], e.Name())
		}
	}
	if !entries[3].IsDir() {
		t.Error("expected nested to be a directory")
	}
}

func TestMemoryFileSystem_ReadDirMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.ReadDir("/absent"); err == nil {
		t.Error("expected error reading missing directory")
	}
}

func TestMove_FallsBackToCopy(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/src.txt", []byte("content"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := Move(mfs, "/src.txt", "/dst.txt"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	if mfs.Exists("/src.txt") {
		t.Error("expected source removed after move")
	}
	data, err := mfs.ReadFile("/dst.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("expected 'content', got %q", data)
	}
}

func TestMove_MissingSource(t *testing.T) {
	err := Move(NewMemoryFileSystem(), "/nope", "/dst")
	if err == nil {
		t.Fatal("expected error moving missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
