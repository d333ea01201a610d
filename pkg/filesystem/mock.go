package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory filesystem for tests. Paths use forward
// slashes. Its listings include the "." and ".." pseudo-entries and leave
// type and size to Classify, like a POSIX directory stream.
type MockFileSystem struct {
	mu           sync.Mutex
	files        map[string]*mockFile
	failClassify map[string]bool
	failOpen     map[string]error
	openHandles  int
	doubleCloses int
}

// mockFile represents a file or directory in the mock filesystem.
type mockFile struct {
	data    []byte
	modTime time.Time
	isDir   bool
}

// mockDirHandle lists a snapshot of a mock directory.
type mockDirHandle struct {
	owner  *MockFileSystem
	dir    string
	names  []string
	next   int
	closed bool
}

// NewMockFileSystem creates a new in-memory filesystem containing "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:        map[string]*mockFile{"/": {isDir: true}},
		failClassify: make(map[string]bool),
		failOpen:     make(map[string]error),
	}
}

// AddDir adds a directory, creating missing parents.
func (m *MockFileSystem) AddDir(dir string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addDirLocked(path.Clean(dir), modTime)
}

// AddFile adds a file, creating missing parent directories.
func (m *MockFileSystem) AddFile(name string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)
	m.addDirLocked(path.Dir(name), modTime)
	m.files[name] = &mockFile{data: data, modTime: modTime}
}

// Attrib returns file information.
func (m *MockFileSystem) Attrib(name string) (Attribute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, exists := m.files[path.Clean(name)]
	if !exists {
		return Attribute{}, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}

	return Attribute{Bytes: int64(len(file.data)), IsDir: file.isDir, Modified: file.modTime}, nil
}

// DoubleCloses returns how many times a handle was closed more than once.
func (m *MockFileSystem) DoubleCloses() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.doubleCloses
}

// FailClassify makes classification of the member at name fail.
func (m *MockFileSystem) FailClassify(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failClassify[path.Clean(name)] = true
}

// FailOpen makes OpenDir of dir fail with err.
func (m *MockFileSystem) FailOpen(dir string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failOpen[path.Clean(dir)] = err
}

// Join joins path elements with forward slashes.
func (m *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Mkdir creates a directory and all necessary parents.
func (m *MockFileSystem) Mkdir(dir string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = path.Clean(dir)
	if file, exists := m.files[dir]; exists {
		if !file.isDir {
			return false, &fs.PathError{Op: "mkdir", Path: dir, Err: errMockNotDir}
		}

		return true, nil
	}

	m.addDirLocked(dir, time.Now())

	return false, nil
}

// OpenDir snapshots the members of dir.
func (m *MockFileSystem) OpenDir(dir string) (DirHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = path.Clean(dir)
	if err, ok := m.failOpen[dir]; ok {
		return nil, err
	}

	file, exists := m.files[dir]
	if !exists {
		return nil, &fs.PathError{Op: "opendir", Path: dir, Err: fs.ErrNotExist}
	}

	if !file.isDir {
		return nil, &fs.PathError{Op: "opendir", Path: dir, Err: errMockNotDir}
	}

	names := append([]string{".", ".."}, m.childrenLocked(dir)...)
	m.openHandles++

	return &mockDirHandle{owner: m, dir: dir, names: names}, nil
}

// OpenHandles returns how many listing handles are open.
func (m *MockFileSystem) OpenHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.openHandles
}

// Remove removes a file.
func (m *MockFileSystem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)

	file, exists := m.files[name]
	if !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}

	if file.isDir {
		return &fs.PathError{Op: "remove", Path: name, Err: errMockIsDir}
	}

	delete(m.files, name)

	return nil
}

// Rmdir removes a directory, and its contents unless failIfNotEmpty is set.
func (m *MockFileSystem) Rmdir(dir string, failIfNotEmpty bool) error {
	if !failIfNotEmpty {
		err := removeTree(m, dir)
		if err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dir = path.Clean(dir)

	file, exists := m.files[dir]
	if !exists {
		return &fs.PathError{Op: "rmdir", Path: dir, Err: fs.ErrNotExist}
	}

	if !file.isDir {
		return &fs.PathError{Op: "rmdir", Path: dir, Err: errMockNotDir}
	}

	if len(m.childrenLocked(dir)) > 0 {
		return &fs.PathError{Op: "rmdir", Path: dir, Err: errMockNotEmpty}
	}

	delete(m.files, dir)

	return nil
}

func (m *MockFileSystem) addDirLocked(dir string, modTime time.Time) {
	for d := dir; ; d = path.Dir(d) {
		if _, exists := m.files[d]; !exists {
			m.files[d] = &mockFile{isDir: true, modTime: modTime}
		}

		if d == "/" || d == "." {
			return
		}
	}
}

// childrenLocked returns the sorted names directly under dir.
func (m *MockFileSystem) childrenLocked(dir string) []string {
	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}

	var names []string

	for name := range m.files {
		if name == dir || !strings.HasPrefix(name, prefix) {
			continue
		}

		rest := name[len(prefix):]
		if rest != "" && !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}

	sort.Strings(names)

	return names
}

// Classify looks the member up in the live filesystem, not the snapshot.
func (h *mockDirHandle) Classify(name string) (bool, int64, error) {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()

	full := path.Join(h.dir, name)
	if h.owner.failClassify[full] {
		return false, 0, fmt.Errorf("failed to stat %s: %w", full, errMockClassify)
	}

	file, exists := h.owner.files[full]
	if !exists {
		return false, 0, fmt.Errorf("failed to stat %s: %w", full, fs.ErrNotExist)
	}

	return file.isDir, int64(len(file.data)), nil
}

// Close releases the handle. A second Close is recorded as a defect.
func (h *mockDirHandle) Close() error {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()

	if h.closed {
		h.owner.doubleCloses++
		return errMockClosed
	}

	h.closed = true
	h.owner.openHandles--

	return nil
}

// ReadNext returns the next name from the snapshot.
func (h *mockDirHandle) ReadNext() (Record, error) {
	if h.next >= len(h.names) {
		return Record{}, io.EOF
	}

	name := h.names[h.next]
	h.next++

	return Record{Name: name}, nil
}

// unexported variables.
var (
	errMockClassify = errors.New("injected classify failure")
	errMockClosed   = errors.New("listing handle already closed")
	errMockIsDir    = errors.New("is a directory")
	errMockNotDir   = errors.New("not a directory")
	errMockNotEmpty = errors.New("directory not empty")
)
