package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileStoreCreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "output")
	store, err := NewFileStore(base)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		t.Fatalf("base directory not created: %v", err)
	}
	if store.BasePath() != base {
		t.Fatalf("BasePath = %q, want %q", store.BasePath(), base)
	}
}

func TestNewFileStoreRequiresBasePath(t *testing.T) {
	if _, err := NewFileStore("   "); err == nil {
		t.Fatalf("blank base path accepted")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	path, err := store.Write("fox_20260824_150405_a_red_fox.png", payload)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Dir(path) != store.BasePath() {
		t.Fatalf("path %q escapes base %q", path, store.BasePath())
	}

	got, err := store.Read("fox_20260824_150405_a_red_fox.png")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %v vs %v", got, payload)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, name := range []string{"../escape.png", "a/b.png", "..", ".", ""} {
		if _, err := store.Write(name, []byte{1}); err == nil {
			t.Fatalf("filename %q accepted", name)
		}
		if _, err := store.Read(name); err == nil {
			t.Fatalf("read of %q accepted", name)
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := store.Read("absent.png"); err == nil {
		t.Fatalf("missing file read succeeded")
	}
}

func TestListReturnsRegularFilesOnly(t *testing.T) {
	base := t.TempDir()
	store, err := NewFileStore(base)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := store.Write("one.png", []byte{1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Write("two.png", []byte{2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(base, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v, want two files", names)
	}
	for _, name := range names {
		if name != "one.png" && name != "two.png" {
			t.Fatalf("unexpected entry %q", name)
		}
	}
}
