// Package filesystem lists directories through a single iterator type that
// works the same over the local OS, SFTP servers and S3 buckets.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is a listable filesystem plus the handful of passthrough
// operations callers need around a listing.
type FileSystem interface {
	Opener

	// Attrib returns size, directory flag and modification time of path.
	Attrib(path string) (Attribute, error)

	// Mkdir creates path and any missing parents. existed is true if path was
	// already a directory.
	Mkdir(path string) (existed bool, err error)

	// Rmdir removes the directory path. Unless failIfNotEmpty is set, its
	// contents are removed first.
	Rmdir(path string, failIfNotEmpty bool) error

	// Remove removes a single file.
	Remove(path string) error

	// Join joins path elements with the filesystem's separator.
	Join(elem ...string) string
}

// RealFileSystem is the local filesystem, listed with native calls.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Attrib returns file information, following symbolic links.
func (fs *RealFileSystem) Attrib(path string) (Attribute, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attribute{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return Attribute{Bytes: info.Size(), IsDir: info.IsDir(), Modified: info.ModTime()}, nil
}

// Join joins path elements with the OS separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Mkdir creates a directory and all necessary parents.
func (fs *RealFileSystem) Mkdir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("failed to create directory %s: %w", path, notDirError(path))
		}

		return true, nil
	}

	err = os.MkdirAll(path, 0o755) //nolint:mnd // Conventional directory permissions
	if err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return false, nil
}

// OpenDir opens path for listing with the platform's native call.
func (fs *RealFileSystem) OpenDir(path string) (DirHandle, error) {
	return openNativeDir(path)
}

// Remove removes a file.
func (fs *RealFileSystem) Remove(path string) error {
	err := os.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// Rmdir removes a directory. A symbolic link is removed as a link and never
// descended into.
func (fs *RealFileSystem) Rmdir(path string, failIfNotEmpty bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink == 0 && !failIfNotEmpty {
		err = removeTree(fs, path)
		if err != nil {
			return err
		}
	}

	err = os.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}

	return nil
}

func notDirError(path string) error {
	return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")} //nolint:err113 // Mirrors ENOTDIR text for the error enricher
}
