package filesystem

import (
	"errors"
	"io"
	"iter"
	"runtime"
	"strings"

	"github.com/joe/dirlist/internal/logger"
)

// DirIterator walks the members of one directory, non-recursively.
//
// The usual loop compares against the end sentinel:
//
//	it := filesystem.NewDirIterator(dir)
//	defer it.Close()
//	for end := filesystem.End(); !it.Equal(end); it.Advance() {
//	    fmt.Println(it.Entry().Name)
//	}
//
// The zero value is a terminal iterator. The "." and ".." pseudo-entries (and
// any other all-dot name) are never produced. A directory that cannot be
// opened looks exactly like an empty one; Err reports why, for diagnostics.
//
// The listing handle is released once: when the iterator runs off the end,
// when its last clone is closed, or when an abandoned iterator is collected.
// A DirIterator must not be advanced from several goroutines at once.
type DirIterator struct {
	ref     *handleRef
	cleanup runtime.Cleanup
	current Entry
	active  bool
	err     error
}

// End returns a terminal iterator for use as the end-of-sequence marker.
func End() *DirIterator {
	return &DirIterator{}
}

// Entries returns a sequence over the members of dir. The directory is opened
// when the sequence is ranged over and released when the loop ends or breaks.
func Entries(opener Opener, dir string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		Open(opener, dir).All()(yield)
	}
}

// NewDirIterator opens dir on the local filesystem.
func NewDirIterator(dir string) *DirIterator {
	return Open(nativeOpener{}, dir)
}

// Open opens dir through opener and loads its first entry.
func Open(opener Opener, dir string) *DirIterator {
	it := &DirIterator{}

	handle, err := opener.OpenDir(dir)
	if err != nil {
		logger.Debug("Listing %s yields nothing: %v", dir, err)
		it.err = err

		return it
	}

	it.attach(newHandleRef(newSharedHandle(handle)))
	it.read()

	return it
}

// Advance moves to the next entry and returns the iterator. Advancing a
// terminal iterator does nothing.
func (it *DirIterator) Advance() *DirIterator {
	switch {
	case it.ref != nil:
		it.read()
	case it.active:
		// A snapshot has no handle to read from.
		it.active = false
		it.current = Entry{}
	}

	return it
}

// All returns a sequence over the remaining entries. The iterator is closed
// when the loop ends, whether by exhaustion or break.
func (it *DirIterator) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		defer func() {
			_ = it.Close()
		}()

		for ; it.active; it.Advance() {
			if !yield(it.current) {
				return
			}
		}
	}
}

// Clone returns an iterator at the same position that shares the listing
// handle. Advancing either one consumes records from the shared handle.
func (it *DirIterator) Clone() *DirIterator {
	clone := &DirIterator{current: it.current, active: it.active, err: it.err}
	if it.ref != nil {
		clone.attach(newHandleRef(it.ref.shared.acquire()))
	}

	return clone
}

// Close gives up this iterator's claim on the listing handle and makes it
// terminal. The handle itself closes with its last claim. Close is idempotent.
func (it *DirIterator) Close() error {
	return it.detach()
}

// Done reports whether the iterator is terminal.
func (it *DirIterator) Done() bool {
	return it.terminal()
}

// Entry returns the current entry. It is the zero Entry once the iterator is
// terminal.
func (it *DirIterator) Entry() Entry {
	return it.current
}

// Equal reports whether two iterators are interchangeable as loop bounds:
// both terminal, or both active on entries with the same name. Size, type
// and handle identity are not compared.
func (it *DirIterator) Equal(other *DirIterator) bool {
	itDone, otherDone := it.terminal(), other.terminal()
	if itDone || otherDone {
		return itDone == otherDone
	}

	return it.current.Path() == other.current.Path()
}

// Err returns the error that kept the directory from opening, if any.
// Errors met after a successful open are not reported.
func (it *DirIterator) Err() error {
	return it.err
}

// PostAdvance advances the iterator and returns a snapshot of its state from
// before the advance. The snapshot holds the prior entry but no claim on the
// listing handle, so the receiver still releases the handle when it runs off
// the end. Advancing a snapshot makes it terminal.
func (it *DirIterator) PostAdvance() *DirIterator {
	prev := &DirIterator{current: it.current, active: it.active, err: it.err}
	it.Advance()

	return prev
}

func (it *DirIterator) attach(ref *handleRef) {
	it.ref = ref
	it.active = true
	it.cleanup = runtime.AddCleanup(it, func(ref *handleRef) {
		_ = ref.drop()
	}, ref)
}

func (it *DirIterator) detach() error {
	if it.ref == nil {
		it.active = false
		it.current = Entry{}

		return nil
	}

	it.cleanup.Stop()
	err := it.ref.drop()
	it.ref = nil
	it.active = false
	it.current = Entry{}

	if err != nil {
		logger.Debug("Closing directory listing failed: %v", err)
	}

	return err
}

// entryFor completes rec into an Entry. Untyped records are classified
// through the handle; when that fails the entry keeps its name only.
func (it *DirIterator) entryFor(handle DirHandle, rec Record) Entry {
	isDir, size := rec.IsDir, rec.Size

	if !rec.Typed {
		if classifier, ok := handle.(Classifier); ok {
			var err error

			isDir, size, err = classifier.Classify(rec.Name)
			if err != nil {
				logger.Debug("Classifying %s failed: %v", rec.Name, err)
				return NewEntry(rec.Name, false, 0)
			}
		}
	}

	if isDir {
		size = 0
	}

	return NewEntry(rec.Name, isDir, size)
}

// read loads the next real entry or makes the iterator terminal.
func (it *DirIterator) read() {
	handle := it.ref.shared.handle

	for {
		rec, err := handle.ReadNext()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debug("Reading directory listing failed: %v", err)
			}

			_ = it.detach()

			return
		}

		if isPseudoEntry(rec.Name) {
			continue
		}

		it.current = it.entryFor(handle, rec)

		return
	}
}

func (it *DirIterator) terminal() bool {
	return it == nil || !it.active
}

// isPseudoEntry reports whether name is ".", ".." or another name made only of
// dots. The empty name is treated the same way.
func isPseudoEntry(name string) bool {
	return strings.TrimLeft(name, ".") == ""
}
