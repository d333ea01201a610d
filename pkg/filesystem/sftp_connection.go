package filesystem

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/joe/dirlist/internal/logger"
)

// SSHConnection is an authenticated SSH connection that SFTP clients share.
type SSHConnection struct {
	client *ssh.Client
	addr   string
}

// Connect dials host:port as user, authenticating with the SSH agent and
// the default private keys in ~/.ssh. Host keys are checked against
// ~/.ssh/known_hosts when that file exists.
func Connect(host string, port int, user string) (*SSHConnection, error) {
	authMethods := sshAuthMethods()
	if len(authMethods) == 0 {
		return nil, ErrNoSSHAuth
	}

	hostKeyCallback, err := hostKeyCallback()
	if err != nil {
		return nil, err
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH connection to %s failed: %w", addr, err)
	}

	logger.Debug("Connected to %s as %s", addr, user)

	return &SSHConnection{client: client, addr: addr}, nil
}

// Close closes the SSH connection.
func (c *SSHConnection) Close() error {
	err := c.client.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close SSH connection to %s: %w", c.addr, err)
	}

	return nil
}

// SSHClient returns the underlying SSH client.
func (c *SSHConnection) SSHClient() *ssh.Client {
	return c.client
}

// hostKeyCallback verifies against known_hosts, or accepts any key (with a
// warning) when the user has no known_hosts file.
func hostKeyCallback() (ssh.HostKeyCallback, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("No home directory; SSH host keys will not be verified")
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // No known_hosts to verify against
	}

	knownHostsPath := filepath.Join(homeDir, ".ssh", "known_hosts")
	if _, err := os.Stat(knownHostsPath); err != nil { //nolint:noinlineerr // Existence probe
		logger.Warn("No %s; SSH host keys will not be verified", knownHostsPath)
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // No known_hosts to verify against
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", knownHostsPath, err)
	}

	return callback, nil
}

// sshAuthMethods returns the SSH agent (if reachable) followed by any
// unencrypted default keys.
func sshAuthMethods() []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if socket := os.Getenv("SSH_AUTH_SOCK"); socket != "" {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return methods
	}

	for _, name := range []string{"id_ed25519", "id_rsa", "id_ecdsa"} {
		keyData, err := os.ReadFile(filepath.Join(homeDir, ".ssh", name))
		if err != nil {
			continue
		}

		// Password-protected keys are skipped.
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			continue
		}

		methods = append(methods, ssh.PublicKeys(signer))
	}

	return methods
}
