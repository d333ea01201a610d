package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Path is a lexical path. It need not exist and is not checked for validity
// on any particular filesystem.
type Path struct {
	text string
}

// NewPath wraps text as a Path.
func NewPath(text string) Path {
	return Path{text: text}
}

// Empty reports whether the path has no text.
func (p Path) Empty() bool {
	return p.text == ""
}

// Name returns the last element of the path.
func (p Path) Name() string {
	idx := lastSeparator(p.text)
	if idx < 0 {
		return p.text
	}

	return p.text[idx+1:]
}

// Root returns everything up to and including the last separator.
func (p Path) Root() Path {
	return NewPath(Root(p.text))
}

// String returns the path text.
func (p Path) String() string {
	return p.text
}

// What classifies the local file the path names without following a final
// symbolic link. A missing path is NotFound; other lookup failures are None.
func (p Path) What() FileType {
	info, err := os.Lstat(p.text)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NotFound
		}

		return None
	}

	return fileTypeOf(info.Mode())
}

// Root returns the directory part of path including its trailing separator,
// or "" when path has no separator.
func Root(path string) string {
	idx := lastSeparator(path)
	if idx < 0 {
		return ""
	}

	return path[:idx+1]
}

func fileTypeOf(mode fs.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return Regular
	case mode.IsDir():
		return Directory
	case mode&fs.ModeSymlink != 0:
		return Symlink
	case mode&fs.ModeCharDevice != 0:
		return Character
	case mode&fs.ModeDevice != 0:
		return Block
	case mode&fs.ModeNamedPipe != 0:
		return FIFO
	case mode&fs.ModeSocket != 0:
		return Socket
	default:
		return Unknown
	}
}

func lastSeparator(path string) int {
	if os.PathSeparator == '/' {
		return strings.LastIndexByte(path, '/')
	}

	return strings.LastIndexAny(path, "/"+string(os.PathSeparator))
}
