package errors_test

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"syscall"
	"testing"

	"github.com/joe/dirlist/pkg/errors"
)

func TestPatternMatcher_Match(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		errorMsg string
		expected errors.ErrorCategory
	}{
		{name: "permission denied", errorMsg: "open /root: permission denied", expected: errors.CategoryPermission},
		{name: "uppercase", errorMsg: "PERMISSION DENIED", expected: errors.CategoryPermission},
		{name: "windows access", errorMsg: "Access is denied.", expected: errors.CategoryPermission},
		{name: "missing path", errorMsg: "open /nope: no such file or directory", expected: errors.CategoryPath},
		{name: "missing bucket", errorMsg: "api error NoSuchBucket", expected: errors.CategoryPath},
		{
			name:     "not a directory beats path phrases",
			errorMsg: "open /etc/hosts: not a directory",
			expected: errors.CategoryNotADirectory,
		},
		{name: "not empty", errorMsg: "rmdir /tmp/x: directory not empty", expected: errors.CategoryDelete},
		{name: "refused", errorMsg: "dial tcp 10.0.0.1:22: connection refused", expected: errors.CategoryConnection},
		{
			name:     "ssh auth",
			errorMsg: "ssh: handshake failed: ssh: unable to authenticate",
			expected: errors.CategoryConnection,
		},
		{name: "unknown", errorMsg: "something odd happened", expected: errors.CategoryUnknown},
	}

	matcher := errors.NewPatternMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			category := matcher.Match(testCase.errorMsg)
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for error: %q",
					testCase.expected, category, testCase.errorMsg)
			}
		})
	}
}

func TestPatternMatcher_MatchError(t *testing.T) {
	t.Parallel()

	var dialer net.Dialer

	_, dialErr := dialer.DialContext(canceledContext(), "tcp", "127.0.0.1:1")

	testCases := []struct {
		name     string
		err      error
		expected errors.ErrorCategory
	}{
		{
			name:     "wrapped ENOTDIR",
			err:      fmt.Errorf("failed to open directory /f: %w", &fs.PathError{Op: "open", Path: "/f", Err: syscall.ENOTDIR}),
			expected: errors.CategoryNotADirectory,
		},
		{
			name:     "wrapped ENOTEMPTY",
			err:      fmt.Errorf("rmdir: %w", syscall.ENOTEMPTY),
			expected: errors.CategoryDelete,
		},
		{
			name:     "fs.ErrPermission",
			err:      fmt.Errorf("failed: %w", fs.ErrPermission),
			expected: errors.CategoryPermission,
		},
		{
			name:     "fs.ErrNotExist",
			err:      fmt.Errorf("failed to list s3://b/p/: %w", fs.ErrNotExist),
			expected: errors.CategoryPath,
		},
		{name: "net error", err: dialErr, expected: errors.CategoryConnection},
		{
			name:     "message fallback",
			err:      fmt.Errorf("remote said: permission denied"), //nolint:err113,perfsprint // Test input
			expected: errors.CategoryPermission,
		},
	}

	matcher := errors.NewPatternMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if testCase.err == nil {
				t.Fatal("test input error is nil")
			}

			category := matcher.MatchError(testCase.err)
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for error: %v",
					testCase.expected, category, testCase.err)
			}
		})
	}
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	return ctx
}
