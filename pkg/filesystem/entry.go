package filesystem

// Entry is one member of a directory as seen by a DirIterator.
//
// Entry is a value: the iterator replaces its current entry on every advance,
// so a copy obtained from Entry() stays as it was.
type Entry struct {
	// Name is the member's name within its parent, not a full path
	Name string

	// IsDir reports whether the member was a directory when it was listed
	IsDir bool

	// Size is the byte length reported by the listing; 0 for directories
	Size int64
}

// NewEntry creates an Entry. Name must already be in its final string form.
func NewEntry(name string, isDir bool, size int64) Entry {
	return Entry{Name: name, IsDir: isDir, Size: size}
}

// Path returns the entry's name as a Path, the key iterators compare on.
func (e Entry) Path() Path {
	return NewPath(e.Name)
}
