package filesystem

import (
	"time"
)

// FileType classifies what a path refers to.
type FileType int

// File types. NotFound is a pseudo-type: a missing path is not an error.
const (
	NotFound FileType = iota - 1
	None
	Regular
	Directory
	Symlink
	Block
	Character
	FIFO
	Socket
	Unknown
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case NotFound:
		return "not-found"
	case None:
		return "none"
	case Regular:
		return "regular"
	case Directory:
		return "directory"
	case Symlink:
		return "symlink"
	case Block:
		return "block"
	case Character:
		return "character"
	case FIFO:
		return "fifo"
	case Socket:
		return "socket"
	default:
		return "unknown"
	}
}

// Attribute is the metadata returned by FileSystem.Attrib.
type Attribute struct {
	Bytes    int64
	IsDir    bool
	Modified time.Time
}
