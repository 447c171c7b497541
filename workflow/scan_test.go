package workflow

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanRecordings(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "wren", "XC2.wav"))
	touch(t, filepath.Join(root, "wren", "XC1.wav"))
	touch(t, filepath.Join(root, "robin", "XC3.WAV"))
	touch(t, filepath.Join(root, "robin", "notes.txt"))

	files, err := ScanRecordings(root, "", ".wav")
	if err != nil {
		t.Fatalf("ScanRecordings: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3: %v", len(files), files)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("files not sorted: %v", files)
	}
}

func TestScanRecordingsSpeciesFilter(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "wren", "XC1.wav"))
	touch(t, filepath.Join(root, "robin", "XC2.wav"))

	files, err := ScanRecordings(root, "wren", ".wav")
	if err != nil {
		t.Fatalf("ScanRecordings: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "XC1.wav" {
		t.Fatalf("unexpected files: %v", files)
	}
}

func TestScanRecordingsEmpty(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "wren", "notes.txt"))

	_, err := ScanRecordings(root, "", ".wav")

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want ConfigurationError", err)
	}
}

func TestScanMetadata(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "wren", "XC1", metadataFileName))
	touch(t, filepath.Join(root, "robin", "XC2", metadataFileName))
	touch(t, filepath.Join(root, "robin", "XC2", profileFileName))

	files, err := ScanMetadata(root)
	if err != nil {
		t.Fatalf("ScanMetadata: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}

	if _, err := ScanMetadata(t.TempDir()); err == nil {
		t.Fatal("expected error for empty root")
	}
}
