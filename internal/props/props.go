// Package props reads and writes the key=value build-metadata file (a
// gradle.properties style file) that records the project version.
package props

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a parsed property file. Line order, comments, and unrelated
// entries are preserved across a load/save cycle.
type File struct {
	path  string
	lines []string
}

// Load reads a property file from disk.
func Load(path string) (*File, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read property file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return &File{path: cleanPath, lines: lines}, nil
}

// Get returns the value for a key, or "" and false when absent.
func (f *File) Get(key string) (string, bool) {
	for _, line := range f.lines {
		if k, v, ok := splitEntry(line); ok && k == key {
			return v, true
		}
	}
	return "", false
}

// Set replaces the value for a key, appending the entry if absent.
func (f *File) Set(key, value string) {
	for i, line := range f.lines {
		if k, _, ok := splitEntry(line); ok && k == key {
			f.lines[i] = key + "=" + value
			return
		}
	}
	f.lines = append(f.lines, key+"="+value)
}

// Save writes the file back to its original path.
func (f *File) Save() error {
	data := strings.Join(f.lines, "\n") + "\n"
	if err := os.WriteFile(f.path, []byte(data), 0644); err != nil { // #nosec G306
		return fmt.Errorf("failed to write property file: %w", err)
	}
	return nil
}

// Path returns the path the file was loaded from.
func (f *File) Path() string {
	return f.path
}

func splitEntry(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
		return "", "", false
	}
	idx := strings.Index(trimmed, "=")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(trimmed[:idx]), strings.TrimSpace(trimmed[idx+1:]), true
}
