package errors

import (
	"errors"
	"io/fs"
	"net"
	"strings"
	"syscall"
)

// PatternMatcher assigns a category to an error.
type PatternMatcher interface {
	// Match categorizes an error message.
	Match(errorMsg string) ErrorCategory

	// MatchError categorizes an error, preferring its wrapped causes over
	// its message.
	MatchError(err error) ErrorCategory
}

// NewPatternMatcher creates a PatternMatcher with the default rules.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []matchRule{
			// "not a directory" must win over the generic path phrases.
			{CategoryNotADirectory, []string{"not a directory", "the directory name is invalid"}},
			{CategoryDelete, []string{"directory not empty", "cannot remove"}},
			{CategoryPermission, []string{"permission denied", "access denied", "access is denied", "operation not permitted"}},
			{CategoryPath, []string{
				"no such file or directory", "file not found", "path does not exist",
				"cannot find the path", "cannot find the file", "nosuchbucket", "not found",
			}},
			{CategoryConnection, []string{
				"ssh connection", "connection refused", "connection reset", "no route to host",
				"i/o timeout", "handshake failed", "unable to authenticate", "no ssh authentication",
			}},
		},
	}
}

type matchRule struct {
	category ErrorCategory
	phrases  []string
}

type patternMatcher struct {
	rules []matchRule
}

// Match returns the category of the first rule with a phrase in errorMsg.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lowerMsg, phrase) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}

// MatchError checks well-known causes before falling back to Match.
func (m *patternMatcher) MatchError(err error) ErrorCategory {
	var netErr net.Error

	switch {
	case errors.Is(err, syscall.ENOTDIR):
		return CategoryNotADirectory
	case errors.Is(err, syscall.ENOTEMPTY):
		return CategoryDelete
	case errors.Is(err, fs.ErrPermission):
		return CategoryPermission
	case errors.Is(err, fs.ErrNotExist):
		return CategoryPath
	case errors.As(err, &netErr):
		return CategoryConnection
	default:
		return m.Match(err.Error())
	}
}
