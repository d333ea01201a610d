package filesystem

import (
	"fmt"
	"sync"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPClientPool hands out SFTP clients that share one SSH connection.
// At most Size clients exist at once; clients are created on first demand
// and reused after Release.
type SFTPClientPool struct {
	dial   func() (*sftp.Client, error)
	idle   chan *sftp.Client // released clients ready for reuse
	slots  chan struct{}     // one token per client in use
	mu     sync.Mutex        // protects closed and sends to idle
	closed bool
}

// NewSFTPClientPool creates a pool of up to size clients over sshClient.
// The pool does not own sshClient.
func NewSFTPClientPool(sshClient *ssh.Client, size int) (*SFTPClientPool, error) {
	return newClientPool(size, func() (*sftp.Client, error) {
		return sftp.NewClient(sshClient) //nolint:wrapcheck // Wrapped by Acquire
	})
}

func newClientPool(size int, dial func() (*sftp.Client, error)) (*SFTPClientPool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pool size must be greater than 0, got %d", size) //nolint:err113 // Validation error with actual value
	}

	return &SFTPClientPool{
		dial:  dial,
		idle:  make(chan *sftp.Client, size),
		slots: make(chan struct{}, size),
	}, nil
}

// Acquire returns a client, blocking while all clients are in use.
// Returns an error if the pool is closed or a new client cannot be created.
func (p *SFTPClientPool) Acquire() (*sftp.Client, error) {
	if p.isClosed() {
		return nil, errPoolClosed
	}

	p.slots <- struct{}{}

	select {
	case client := <-p.idle:
		return client, nil
	default:
	}

	client, err := p.dial()
	if err != nil {
		<-p.slots
		return nil, fmt.Errorf("failed to create SFTP client: %w", err)
	}

	return client, nil
}

// Close closes idle clients. Clients still in use are closed when released.
// Close is idempotent. It does NOT close the SSH connection.
func (p *SFTPClientPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	var firstErr error

	for {
		select {
		case client := <-p.idle:
			if err := client.Close(); err != nil && firstErr == nil { //nolint:noinlineerr // Inline error check is idiomatic for cleanup operations
				firstErr = err
			}
		default:
			return firstErr
		}
	}
}

// Release returns a client to the pool, or closes it if the pool is closed.
// A nil client is ignored.
func (p *SFTPClientPool) Release(client *sftp.Client) {
	if client == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		_ = client.Close()
	} else {
		p.idle <- client // never blocks: at most cap(idle) clients exist
	}
	p.mu.Unlock()

	<-p.slots
}

// Size returns the maximum number of clients.
func (p *SFTPClientPool) Size() int {
	return cap(p.slots)
}

func (p *SFTPClientPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closed
}
