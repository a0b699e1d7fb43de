package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("CreateDirectoryIfNotExists returned error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}

	// Second call on existing directory is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error for existing directory, got: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_EmptyPath(t *testing.T) {
	if err := CreateDirectoryIfNotExists(""); err != nil {
		t.Errorf("Expected no error for empty path, got: %v", err)
	}
}

func TestFindTool_OnPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH fixture uses unix permissions")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "sometool")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATH", dir)

	path, err := FindTool("sometool")
	if err != nil {
		t.Fatalf("FindTool returned error: %v", err)
	}
	if path != fake {
		t.Errorf("Expected %s, got %s", fake, path)
	}
}

func TestFindTool_Missing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := FindTool("definitely-not-installed-tool")
	if err == nil {
		t.Fatal("Expected error for missing tool")
	}
	if !strings.Contains(err.Error(), "definitely-not-installed-tool") {
		t.Errorf("Expected error to name the missing tool, got: %v", err)
	}
	if !strings.Contains(err.Error(), "install") {
		t.Errorf("Expected install guidance in error, got: %v", err)
	}
}

func TestOpenFileWithDefaultApp_MissingFile(t *testing.T) {
	if err := OpenFileWithDefaultApp("/no/such/file.mp3"); err == nil {
		t.Error("Expected error for missing file")
	}
}
