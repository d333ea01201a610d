//go:build !linux && !darwin && !freebsd && !windows

package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileDirHandle lists a directory one os.DirEntry at a time.
type fileDirHandle struct {
	dir  string
	file *os.File
}

// Classify stats the named member.
func (h *fileDirHandle) Classify(name string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(h.dir, name))
	if err != nil {
		return false, 0, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	return info.IsDir(), info.Size(), nil
}

// Close closes the directory file.
func (h *fileDirHandle) Close() error {
	err := h.file.Close()
	if err != nil {
		return fmt.Errorf("failed to close directory %s: %w", h.dir, err)
	}

	return nil
}

// ReadNext returns the next member. os.File.ReadDir reports io.EOF at the end.
func (h *fileDirHandle) ReadNext() (Record, error) {
	entries, err := h.file.ReadDir(1)
	if err != nil {
		return Record{}, err //nolint:wrapcheck // io.EOF must reach the caller unwrapped
	}

	return Record{Name: entries[0].Name()}, nil
}

func openNativeDir(path string) (DirHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open directory %s: not a directory", path) //nolint:err113 // Path validation error with actual path
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	return &fileDirHandle{dir: path, file: file}, nil
}
