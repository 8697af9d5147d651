// Package input acquires pasted text for analysis, from stdin or a file.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// MaxTextBytes caps text read for analysis. Reports are generated from
// transcripts and articles, not corpora; anything bigger is almost
// certainly the wrong file.
const MaxTextBytes = 10 << 20

// HasStdin returns true if stdin has data available (not a TTY)
func HasStdin() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Check if stdin is a pipe or has data
	return (fi.Mode()&os.ModeCharDevice) == 0 || fi.Size() > 0
}

// ReadStdin reads all content from stdin
// Returns empty string if stdin is a TTY or has no data
func ReadStdin() (string, error) {
	if !HasStdin() {
		return "", nil
	}

	// Check if stdin is a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	data, err := io.ReadAll(io.LimitReader(os.Stdin, MaxTextBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > MaxTextBytes {
		return "", fmt.Errorf("stdin exceeds the %d MiB text limit", MaxTextBytes>>20)
	}

	return string(data), nil
}

// ReadTextFile reads a text file for analysis, expanding ~ in the path.
func ReadTextFile(path string) (string, error) {
	expanded := ExpandPath(path)

	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory", path)
	}
	if info.Size() > MaxTextBytes {
		return "", fmt.Errorf("%q exceeds the %d MiB text limit", path, MaxTextBytes>>20)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
