package filesystem

// Each target OS family provides openNativeDir in a build-tagged file:
//   - native_unix.go:    linux, darwin, freebsd (readdir stream + stat)
//   - native_windows.go: windows (FindFirstFile search handle)
//   - native_other.go:   everything else (os.File.ReadDir)
//
// The returned handle must fail to open for anything that is not a directory.
var _ func(string) (DirHandle, error) = openNativeDir

// nativeOpener is the Opener for the local filesystem.
type nativeOpener struct{}

// OpenDir opens path with the platform's native listing call.
func (nativeOpener) OpenDir(path string) (DirHandle, error) {
	return openNativeDir(path)
}
