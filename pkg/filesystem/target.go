package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind identifies the backend a Target lives on.
type Kind int

// Kind values.
const (
	KindLocal Kind = iota
	KindSFTP
	KindS3
)

// String returns the URL scheme of the kind, or "local".
func (k Kind) String() string {
	switch k {
	case KindSFTP:
		return "sftp"
	case KindS3:
		return "s3"
	default:
		return "local"
	}
}

// Target is a parsed command-line location.
type Target struct {
	Kind Kind

	// Path is the directory to list on the backend: a local path, a remote
	// path or an S3 key prefix.
	Path string

	// SFTP
	Host string
	Port int
	User string

	// S3
	Bucket string
}

// ParseTarget parses a local path or a URL.
//
// Supported forms:
//   - /local/path or relative/path
//   - sftp://user@host[:port]/path (relative to the remote home directory)
//   - sftp://user@host[:port]//path (absolute remote path)
//   - s3://bucket[/prefix]
func ParseTarget(raw string) (*Target, error) {
	switch {
	case strings.HasPrefix(raw, "sftp://"):
		return parseSFTPTarget(raw)
	case strings.HasPrefix(raw, "s3://"):
		return parseS3Target(raw)
	default:
		return &Target{Kind: KindLocal, Path: raw}, nil
	}
}

// String renders the target back in the form ParseTarget accepts.
func (t *Target) String() string {
	switch t.Kind {
	case KindSFTP:
		remote := "/" + t.Path
		if t.Path == "." {
			remote = ""
		}

		return fmt.Sprintf("sftp://%s@%s:%d%s", t.User, t.Host, t.Port, remote)
	case KindS3:
		if t.Path == "" {
			return "s3://" + t.Bucket
		}

		return "s3://" + t.Bucket + "/" + t.Path
	default:
		return t.Path
	}
}

func parseS3Target(raw string) (*Target, error) {
	u, err := url.Parse(raw) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid S3 URL: %w", err)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("S3 URL must include a bucket (s3://bucket/prefix)") //nolint:err113,perfsprint // URL validation with format guidance
	}

	return &Target{
		Kind:   KindS3,
		Bucket: u.Host,
		Path:   strings.Trim(u.Path, "/"),
	}, nil
}

//nolint:cyclop // Scheme, user, host, port and path each need validating
func parseSFTPTarget(raw string) (*Target, error) {
	u, err := url.Parse(raw) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint // URL validation with format guidance
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := 22
	if portStr := u.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
	}

	//   sftp://user@host/path  → path relative to the home directory
	//   sftp://user@host//path → absolute /path
	//   sftp://user@host       → the home directory
	remotePath := u.Path

	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &Target{
		Kind: KindSFTP,
		Path: remotePath,
		Host: host,
		Port: port,
		User: u.User.Username(),
	}, nil
}
