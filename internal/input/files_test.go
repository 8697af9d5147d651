package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTextFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "transcript.txt")
	if err := os.WriteFile(path, []byte("the transcript"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("existing file", func(t *testing.T) {
		content, err := ReadTextFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content != "the transcript" {
			t.Errorf("content=%q", content)
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := ReadTextFile(filepath.Join(tempDir, "missing.txt"))
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadTextFile(tempDir)
		if err == nil || !strings.Contains(err.Error(), "directory") {
			t.Errorf("expected directory error, got: %v", err)
		}
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/videos/talk.mp4"); got != filepath.Join(home, "videos", "talk.mp4") {
		t.Errorf("ExpandPath(~/videos/talk.mp4)=%q", got)
	}
	if got := ExpandPath("/abs/path.mp4"); got != "/abs/path.mp4" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandPath("relative.mp4"); got != "relative.mp4" {
		t.Errorf("relative path changed: %q", got)
	}
}

func TestHasStdin(t *testing.T) {
	// In test environment, stdin is usually not a pipe.
	// This test just ensures the function doesn't panic.
	_ = HasStdin()
}
