package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/fs"
)

// listingDirHandle lists a directory of any kr/fs.FileSystem. The listing is
// fetched in one ReadDir call when the handle opens; records carry the type
// and size the server reported, without following symbolic links.
type listingDirHandle struct {
	infos []os.FileInfo
	next  int
}

// Close drops the buffered listing.
func (h *listingDirHandle) Close() error {
	h.infos = nil
	return nil
}

// ReadNext returns the next buffered record.
func (h *listingDirHandle) ReadNext() (Record, error) {
	if h.next >= len(h.infos) {
		return Record{}, io.EOF
	}

	info := h.infos[h.next]
	h.next++

	return Record{Name: info.Name(), IsDir: info.IsDir(), Size: info.Size(), Typed: true}, nil
}

// openListing reads dir from fsys. A path that is not a directory fails.
func openListing(fsys fs.FileSystem, dir string) (DirHandle, error) {
	info, err := fsys.Lstat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}

	if !info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, notDirError(dir))
	}

	infos, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	return &listingDirHandle{infos: infos}, nil
}
