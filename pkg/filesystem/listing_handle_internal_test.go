//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem

import (
	"io/fs"
	"os"
	"path"
	"testing"
	"time"

	kfs "github.com/kr/fs"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

// fakeInfo is a minimal os.FileInfo.
type fakeInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (i fakeInfo) IsDir() bool        { return i.mode.IsDir() }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) Mode() os.FileMode  { return i.mode }
func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return i.size }
func (i fakeInfo) Sys() any           { return nil }

// fakeListing is a kr/fs.FileSystem with fixed contents.
type fakeListing struct {
	stat     map[string]fakeInfo
	children map[string][]os.FileInfo
}

func (f fakeListing) Join(elem ...string) string {
	return path.Join(elem...)
}

func (f fakeListing) Lstat(name string) (os.FileInfo, error) {
	info, ok := f.stat[name]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}

	return info, nil
}

func (f fakeListing) ReadDir(dirname string) ([]os.FileInfo, error) {
	return f.children[dirname], nil
}

var _ kfs.FileSystem = fakeListing{}

func TestOpenListing_TypedRecords(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fsys := fakeListing{
		stat: map[string]fakeInfo{
			"/d":      {name: "d", mode: os.ModeDir},
			"/d/file": {name: "file", size: 9},
		},
		children: map[string][]os.FileInfo{
			"/d": {
				fakeInfo{name: "file", size: 9},
				fakeInfo{name: "sub", size: 4096, mode: os.ModeDir},
			},
		},
	}

	handle, err := openListing(fsys, "/d")
	g.Expect(err).ShouldNot(HaveOccurred())

	it := Open(openerFunc(func(string) (DirHandle, error) { return handle, nil }), "/d")

	var got []Entry
	for entry := range it.All() {
		got = append(got, entry)
	}

	g.Expect(got).Should(Equal([]Entry{
		NewEntry("file", false, 9),
		NewEntry("sub", true, 0),
	}))

	_, err = openListing(fsys, "/d/file")
	g.Expect(err).Should(MatchError(ContainSubstring("not a directory")))

	_, err = openListing(fsys, "/missing")
	g.Expect(err).Should(MatchError(fs.ErrNotExist))
}
