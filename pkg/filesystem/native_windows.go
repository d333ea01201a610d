//go:build windows

package filesystem

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/windows"
)

// windowsDirHandle is a FindFirstFile search handle. The first record comes
// back from FindFirstFile itself and is held until the first ReadNext.
type windowsDirHandle struct {
	dir    string
	handle windows.Handle
	data   windows.Win32finddata
	primed bool
}

// Close closes the search handle.
func (h *windowsDirHandle) Close() error {
	err := windows.FindClose(h.handle)
	if err != nil {
		return fmt.Errorf("failed to close search handle for %s: %w", h.dir, err)
	}

	return nil
}

// ReadNext returns the next record. Find data carries type and size, so
// records are typed.
func (h *windowsDirHandle) ReadNext() (Record, error) {
	if h.primed {
		h.primed = false
	} else {
		err := windows.FindNextFile(h.handle, &h.data)
		if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
			return Record{}, io.EOF
		}

		if err != nil {
			return Record{}, fmt.Errorf("failed to read directory %s: %w", h.dir, err)
		}
	}

	return Record{
		Name:  windows.UTF16ToString(h.data.FileName[:]),
		IsDir: h.data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0,
		Size:  int64(h.data.FileSizeHigh)<<32 | int64(h.data.FileSizeLow),
		Typed: true,
	}, nil
}

func openNativeDir(path string) (DirHandle, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid directory path %s: %w", path, err)
	}

	// Without this check a file path would match itself as a pattern.
	attrs, err := windows.GetFileAttributes(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	if attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, windows.ERROR_DIRECTORY)
	}

	pattern, err := windows.UTF16PtrFromString(path + `\*`)
	if err != nil {
		return nil, fmt.Errorf("invalid directory path %s: %w", path, err)
	}

	handle := &windowsDirHandle{dir: path, primed: true}

	handle.handle, err = windows.FindFirstFile(pattern, &handle.data)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	return handle, nil
}
