package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/pkg/sftp"
)

// Exported variables.
var (
	ErrNoSSHAuth = errors.New("no SSH authentication methods available (tried SSH agent and default keys)")
)

// unexported variables.
var (
	errPoolClosed = errors.New("pool is closed")
)

// SFTPFileSystem is a remote filesystem reached over SFTP. Each open
// listing holds one pooled client until the listing is closed.
type SFTPFileSystem struct {
	pool *SFTPClientPool
}

// NewSFTPFileSystem creates an SFTP filesystem with up to poolSize clients
// over conn.
func NewSFTPFileSystem(conn *SSHConnection, poolSize int) (*SFTPFileSystem, error) {
	pool, err := NewSFTPClientPool(conn.SSHClient(), poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create SFTP client pool: %w", err)
	}

	return &SFTPFileSystem{pool: pool}, nil
}

// Attrib returns file information for a remote path.
func (fs *SFTPFileSystem) Attrib(name string) (Attribute, error) {
	var attr Attribute

	err := fs.withClient(func(client *sftp.Client) error {
		info, err := client.Stat(name)
		if err != nil {
			return fmt.Errorf("failed to stat remote path %s: %w", name, err)
		}

		attr = Attribute{Bytes: info.Size(), IsDir: info.IsDir(), Modified: info.ModTime()}

		return nil
	})

	return attr, err
}

// Close closes the client pool. Listings still open keep their client until
// they are closed.
func (fs *SFTPFileSystem) Close() error {
	return fs.pool.Close()
}

// Join joins remote path elements; SFTP always uses forward slashes.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Mkdir creates a remote directory and all necessary parents.
func (fs *SFTPFileSystem) Mkdir(name string) (bool, error) {
	var existed bool

	err := fs.withClient(func(client *sftp.Client) error {
		info, err := client.Stat(name)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("failed to create remote directory %s: %w", name, notDirError(name))
			}

			existed = true

			return nil
		}

		err = client.MkdirAll(name)
		if err != nil {
			return fmt.Errorf("failed to create remote directory %s: %w", name, err)
		}

		return nil
	})

	return existed, err
}

// OpenDir lists a remote directory on a pooled client. The client goes back
// to the pool when the handle is closed.
func (fs *SFTPFileSystem) OpenDir(name string) (DirHandle, error) {
	client, err := fs.pool.Acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire SFTP client: %w", err)
	}

	handle, err := openListing(client, name)
	if err != nil {
		fs.pool.Release(client)
		return nil, err
	}

	return &pooledDirHandle{DirHandle: handle, client: client, pool: fs.pool}, nil
}

// PoolSize returns the maximum number of concurrent SFTP clients.
func (fs *SFTPFileSystem) PoolSize() int {
	return fs.pool.Size()
}

// Remove removes a remote file.
func (fs *SFTPFileSystem) Remove(name string) error {
	return fs.withClient(func(client *sftp.Client) error {
		err := client.Remove(name)
		if err != nil {
			return fmt.Errorf("failed to remove remote file %s: %w", name, err)
		}

		return nil
	})
}

// Rmdir removes a remote directory. Symbolic links are removed, not followed.
func (fs *SFTPFileSystem) Rmdir(name string, failIfNotEmpty bool) error {
	var isLink bool

	err := fs.withClient(func(client *sftp.Client) error {
		info, err := client.Lstat(name)
		if err != nil {
			return fmt.Errorf("failed to remove remote directory %s: %w", name, err)
		}

		isLink = info.Mode()&os.ModeSymlink != 0

		return nil
	})
	if err != nil {
		return err
	}

	if !isLink && !failIfNotEmpty {
		err = removeTree(fs, name)
		if err != nil {
			return err
		}
	}

	return fs.withClient(func(client *sftp.Client) error {
		if isLink {
			err = client.Remove(name)
		} else {
			err = client.RemoveDirectory(name)
		}

		if err != nil {
			return fmt.Errorf("failed to remove remote directory %s: %w", name, err)
		}

		return nil
	})
}

// withClient runs fn on a pooled client. The client is not held across
// calls, so removeTree can recurse without exhausting the pool.
func (fs *SFTPFileSystem) withClient(fn func(*sftp.Client) error) error {
	client, err := fs.pool.Acquire()
	if err != nil {
		return fmt.Errorf("failed to acquire SFTP client: %w", err)
	}
	defer fs.pool.Release(client)

	return fn(client)
}

// pooledDirHandle returns its client to the pool exactly once on Close.
type pooledDirHandle struct {
	DirHandle

	client *sftp.Client
	pool   *SFTPClientPool
	once   sync.Once
}

// Close closes the listing and releases the client.
func (h *pooledDirHandle) Close() error {
	err := h.DirHandle.Close()

	h.once.Do(func() {
		h.pool.Release(h.client)
	})

	return err
}
