//go:build linux || darwin || freebsd

package filesystem

import (
	"fmt"
	"io"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const direntBufferSize = 8192

// unixDirHandle is an open directory stream read with getdents.
type unixDirHandle struct {
	dir     string
	fd      int
	buf     []byte
	pos     int
	end     int
	pending []string
}

// Classify stats the named member, following symbolic links.
func (h *unixDirHandle) Classify(name string) (bool, int64, error) {
	var st unix.Stat_t

	err := unix.Stat(filepath.Join(h.dir, name), &st)
	if err != nil {
		return false, 0, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	return uint32(st.Mode)&unix.S_IFMT == unix.S_IFDIR, st.Size, nil //nolint:unconvert // Mode width differs per OS
}

// Close closes the directory descriptor.
func (h *unixDirHandle) Close() error {
	err := unix.Close(h.fd)
	if err != nil {
		return fmt.Errorf("failed to close directory %s: %w", h.dir, err)
	}

	return nil
}

// ReadNext returns the next name from the stream. Records are untyped.
func (h *unixDirHandle) ReadNext() (Record, error) {
	for len(h.pending) == 0 {
		if h.pos >= h.end {
			n, err := unix.ReadDirent(h.fd, h.buf)
			if err != nil {
				return Record{}, fmt.Errorf("failed to read directory %s: %w", h.dir, err)
			}

			if n <= 0 {
				return Record{}, io.EOF
			}

			h.pos, h.end = 0, n
		}

		consumed, _, names := unix.ParseDirent(h.buf[h.pos:h.end], -1, h.pending[:0])
		h.pos += consumed
		h.pending = names

		if consumed == 0 && len(names) == 0 {
			// A partial record at the end of the buffer; refill.
			h.pos = h.end
		}
	}

	name := h.pending[0]
	h.pending = h.pending[1:]

	return Record{Name: name}, nil
}

func openNativeDir(path string) (DirHandle, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	return &unixDirHandle{
		dir: path,
		fd:  fd,
		buf: make([]byte, direntBufferSize),
	}, nil
}
