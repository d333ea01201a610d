package filesystem

import (
	"fmt"
	"os"
	"time"
)

// CurrentDir returns the process working directory.
func CurrentDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return dir, nil
}

// FileSize returns the size of path, or 0 if it cannot be determined.
func FileSize(fsys FileSystem, path string) int64 {
	attr, err := fsys.Attrib(path)
	if err != nil {
		return 0
	}

	return attr.Bytes
}

// ModifiedTime returns the modification time of path.
func ModifiedTime(fsys FileSystem, path string) (time.Time, error) {
	attr, err := fsys.Attrib(path)
	if err != nil {
		return time.Time{}, err
	}

	return attr.Modified, nil
}

// UserDir returns the current user's home directory.
func UserDir() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return dir, nil
}

// removeTree removes everything below dir, leaving dir itself in place.
// Members are collected before anything is deleted so the listing is never
// read while it is being modified.
func removeTree(fsys FileSystem, dir string) error {
	var members []Entry
	for entry := range Entries(fsys, dir) {
		members = append(members, entry)
	}

	for _, member := range members {
		path := fsys.Join(dir, member.Name)

		var err error
		if member.IsDir {
			err = fsys.Rmdir(path, false)
		} else {
			err = fsys.Remove(path)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
