package filesystem

import (
	"sync"
	"sync/atomic"
)

// Opener opens a directory for listing.
type Opener interface {
	// OpenDir returns a handle positioned before the first record of path.
	// It fails if path does not exist, is not a directory or cannot be read.
	OpenDir(path string) (DirHandle, error)
}

// DirHandle is an open, in-progress directory listing.
//
// A handle is used by one owner at a time and Close is called on it exactly
// once; implementations do not need to guard against a second Close.
type DirHandle interface {
	// ReadNext returns the next record, or io.EOF when the listing is exhausted.
	// Records may include the "." and ".." pseudo-entries.
	ReadNext() (Record, error)

	// Close releases the native resource.
	Close() error
}

// Classifier is implemented by handles whose records do not carry a type or
// size. Classify looks up the named member of the listed directory.
type Classifier interface {
	Classify(name string) (isDir bool, size int64, err error)
}

// Record is one raw member of a listing.
type Record struct {
	Name  string
	IsDir bool
	Size  int64

	// Typed reports whether IsDir and Size were filled in by the listing.
	Typed bool
}

// sharedHandle gives a DirHandle reference-counted ownership.
// The last release closes the handle; close runs at most once.
type sharedHandle struct {
	handle DirHandle
	refs   atomic.Int32
	once   sync.Once
	err    error
}

func newSharedHandle(handle DirHandle) *sharedHandle {
	shared := &sharedHandle{handle: handle}
	shared.refs.Store(1)

	return shared
}

func (s *sharedHandle) acquire() *sharedHandle {
	s.refs.Add(1)
	return s
}

func (s *sharedHandle) release() error {
	if s.refs.Add(-1) > 0 {
		return nil
	}

	s.once.Do(func() {
		s.err = s.handle.Close()
	})

	return s.err
}

// handleRef is one owner's claim on a sharedHandle. Dropping it twice is a
// no-op, which lets an explicit Close and a runtime cleanup coexist.
type handleRef struct {
	shared  *sharedHandle
	dropped atomic.Bool
}

func newHandleRef(shared *sharedHandle) *handleRef {
	return &handleRef{shared: shared}
}

func (r *handleRef) drop() error {
	if !r.dropped.CompareAndSwap(false, true) {
		return nil
	}

	return r.shared.release()
}
